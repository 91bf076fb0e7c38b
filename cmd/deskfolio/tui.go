package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/deskfolio/internal/config"
	"github.com/1broseidon/deskfolio/internal/ipc"
	"github.com/1broseidon/deskfolio/internal/tui"
	"github.com/1broseidon/deskfolio/internal/viewport"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskfolio/config.yaml)")
	serve := fs.Bool("serve", true, "Expose the desktop on the IPC socket while the TUI runs")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: deskfolio tui [--path PATH] [--serve=false]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the desktop in the terminal. Mouse input drives the windows:")
		fmt.Fprintln(os.Stderr, "drag title bars, drag the corner handle to resize, click the")
		fmt.Fprintln(os.Stderr, "title-bar buttons, click dock items and double-click icons.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  q, Esc    Quit")
		fmt.Fprintln(os.Stderr, "  Ctrl+C    Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	// The terminal owns the desktop here, so it wins over X11 in auto mode.
	if cfg.Viewport.Source == config.ViewportAuto {
		cfg.Viewport.Source = config.ViewportTerminal
	}
	sess, err := newSession(cfg, viewport.DefaultProbes())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.Close()

	if *serve {
		server, err := ipc.NewServer(sess.desk)
		if err == nil {
			err = server.Start()
		}
		if err != nil {
			sess.logger.Warn("IPC server unavailable", "error", err)
		} else {
			defer server.Stop()
		}
	}

	err = tui.Run(tui.Options{
		Config:         cfg,
		Desktop:        sess.desk,
		Logger:         sess.logger,
		FollowTerminal: sess.viewport.Source == config.ViewportTerminal,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
