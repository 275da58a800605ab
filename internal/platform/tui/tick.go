// Package tui provides the Bubble Tea integration for guard-patrol.
// It handles the watch loop, the puzzle picker, run history and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameRate caps how often the watch view redraws.
const maxFrameRate = 60

// TickMsg is sent to advance the guard. ID identifies the tick loop that
// scheduled it; ticks from a replaced loop are ignored.
type TickMsg struct {
	Time time.Time
	ID   int
}

// tickPlan converts a rate in steps per second into a tick interval and
// the number of steps to take on each tick.
func tickPlan(rate int) (time.Duration, int) {
	if rate <= 0 {
		rate = 1
	}
	if rate <= maxFrameRate {
		return time.Second / time.Duration(rate), 1
	}
	steps := (rate + maxFrameRate - 1) / maxFrameRate
	return time.Second / maxFrameRate, steps
}

// tickCmd returns a Bubble Tea command that sends one tick for loop id.
func tickCmd(id, rate int) tea.Cmd {
	interval, _ := tickPlan(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
