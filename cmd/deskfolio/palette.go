package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/deskfolio/internal/ipc"
	"github.com/1broseidon/deskfolio/internal/palette"
)

func runPalette(args []string) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	backendName := fs.String("backend", "auto", "Palette backend: auto, list, rofi, fuzzel, wofi, dmenu")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskfolio palette [--backend NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pick a window and toggle it as if its dock item was clicked.")
		fmt.Fprintln(os.Stderr, "Requires a running daemon or TUI.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	backend, err := palette.NewBackend(*backendName, interactive)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	res, err := palette.Run(ipc.NewClient(), backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if res != nil {
		printResult(res)
	}
	return 0
}
