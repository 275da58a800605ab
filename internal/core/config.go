package core

// RuntimeConfig contains the view settings handed to the watch model.
type RuntimeConfig struct {
	ScreenW        int // Screen width in characters
	ScreenH        int // Screen height in characters
	TickRate       int // Guard steps per second
	ShowTrail      bool
	ShowCandidates bool
	Palette        Palette
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  20,
		ShowTrail: true,
		Palette:   DefaultPalette(),
	}
}

// SpeedSteps are the tick rates the viewer cycles through.
var SpeedSteps = []int{1, 2, 5, 10, 20, 50, 100, 250}

// Faster returns the next tick rate above rate, capped at the fastest step.
func Faster(rate int) int {
	for _, s := range SpeedSteps {
		if s > rate {
			return s
		}
	}
	return SpeedSteps[len(SpeedSteps)-1]
}

// Slower returns the next tick rate below rate, floored at the slowest step.
func Slower(rate int) int {
	for i := len(SpeedSteps) - 1; i >= 0; i-- {
		if SpeedSteps[i] < rate {
			return SpeedSteps[i]
		}
	}
	return SpeedSteps[0]
}
