package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the patrol SSH server",
	Long: `Start an SSH server that lets users connect and watch built-in puzzles.

Each SSH connection gets its own session with a puzzle picker.
Run history is shared by all sessions on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.patrol/host_key

Examples:
  patrol serve                           # Listen on the configured address
  patrol serve --ssh :2222               # Listen on port 2222
  patrol serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	view, err := viewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.View = view
	srvCfg.StepLimit = cfg.Search.StepLimit
	srvCfg.Workers = cfg.Search.Workers
	if cfg.Server.Address != "" {
		srvCfg.Address = cfg.Server.Address
	}
	srvCfg.HostKeyPath = cfg.Server.HostKey
	if cfg.Server.IdleTimeoutMinutes > 0 {
		srvCfg.IdleTimeout = cfg.Server.IdleTimeout()
	}

	if cmd.Flags().Changed("ssh") {
		srvCfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		srvCfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(srvCfg, store, logger.WithPrefix("patrol-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting patrol SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
