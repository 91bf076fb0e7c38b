package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/deskfolio/internal/config"
	"github.com/1broseidon/deskfolio/internal/daemon"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/ipc"
	"github.com/1broseidon/deskfolio/internal/viewport"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskfolio/config.yaml)")
	watch := fs.Duration("watch", 10*time.Second, "Viewport re-probe interval (0 disables)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskfolio daemon [--path PATH] [--watch DURATION]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the window manager headless and serve it over the IPC socket.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := res.Config
	log.Printf("Configuration loaded (%d windows, viewport source: %s)", len(cfg.Windows), cfg.Viewport.Source)

	probes := viewport.DefaultProbes()
	// The daemon has no terminal of its own.
	probes.Terminal = nil
	sess, err := newSession(cfg, probes)
	if err != nil {
		log.Printf("Failed to create desktop: %v", err)
		return 1
	}
	defer sess.Close()

	ipcServer, err := ipc.NewServer(sess.desk)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer ipcServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *watch > 0 && sess.viewport.Source == config.ViewportX11 {
		watcher := daemon.NewWatcher(daemon.WatcherConfig{
			Interval: *watch,
			Logger:   sess.logger,
		}, func() (geom.Size, error) {
			return probes.X11(cfg.Display)
		}, sess.desk, sess.viewport.Size)
		go watcher.Run(ctx)
	}

	log.Println("deskfolio daemon started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down deskfolio daemon...")
	return 0
}
