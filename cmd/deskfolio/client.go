package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/geom"
	"github.com/1broseidon/deskfolio/internal/ipc"
	"github.com/1broseidon/deskfolio/internal/wm"
)

// windowCommands maps CLI verbs to IPC commands.
var windowCommands = map[string]ipc.CommandType{
	"open":     ipc.CommandOpen,
	"close":    ipc.CommandClose,
	"minimize": ipc.CommandMinimize,
	"restore":  ipc.CommandRestore,
	"maximize": ipc.CommandToggleMaximize,
	"toggle":   ipc.CommandToggle,
	"focus":    ipc.CommandFocus,
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskfolio status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("windows:        %d (%d open)\n", status.WindowCount, status.OpenCount)
	fmt.Printf("focused:        %s\n", displayOr(string(status.Focused), "(none)"))
	fmt.Printf("viewport:       %dx%d\n", status.Viewport.Width, status.Viewport.Height)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runState(args []string) int {
	fs := flag.NewFlagSet("state", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print the raw snapshot as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskfolio state [--json]")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	snap, err := ipc.NewClient().GetState()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	printSnapshot(snap)
	return 0
}

func printSnapshot(snap *desktop.Snapshot) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATE\tZ\tGEOMETRY\tFOCUSED")
	for _, w := range snap.Windows {
		focused := ""
		if w.ID == snap.Focused {
			focused = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%dx%d+%d+%d\t%s\n", w.ID, windowState(w), w.Z, w.Width, w.Height, w.X, w.Y, focused)
	}
	tw.Flush()
	fmt.Printf("z_top: %d  viewport: %dx%d  session: %s\n", snap.Top, snap.Viewport.Width, snap.Viewport.Height, snap.Session.Kind)
}

func windowState(w wm.Window) string {
	switch {
	case !w.Open:
		return "closed"
	case w.Minimized:
		return "minimized"
	case w.Maximized:
		return "maximized"
	default:
		return "open"
	}
}

func runWindow(verb string, args []string) int {
	fs := flag.NewFlagSet(verb, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deskfolio %s <id>\n", verb)
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	res, err := ipc.NewClient().Window(windowCommands[verb], wm.ID(fs.Arg(0)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printResult(res)
	return 0
}

func runDrag(args []string) int {
	return runGeometry("drag", "<id> <x> <y>", args, func(c *ipc.Client, id wm.ID, a, b int) (*desktop.Result, error) {
		return c.Drag(id, geom.Point{X: a, Y: b})
	})
}

func runResize(args []string) int {
	return runGeometry("resize", "<id> <width> <height>", args, func(c *ipc.Client, id wm.ID, a, b int) (*desktop.Result, error) {
		return c.Resize(id, geom.Size{Width: a, Height: b})
	})
}

func runGeometry(name, usage string, args []string, apply func(*ipc.Client, wm.ID, int, int) (*desktop.Result, error)) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deskfolio %s %s\n", name, usage)
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return 2
	}
	a, b, err := parsePair(fs.Arg(1), fs.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := apply(ipc.NewClient(), wm.ID(fs.Arg(0)), a, b)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printResult(res)
	return 0
}

func runViewport(args []string) int {
	fs := flag.NewFlagSet("viewport", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskfolio viewport <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Update the clamp bounds. Window geometry is left as it is.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	w, h, err := parsePair(fs.Arg(0), fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := ipc.NewClient().SetViewport(geom.Size{Width: w, Height: h}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func parsePair(a, b string) (int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}

func printResult(res *desktop.Result) {
	if res.Window == nil {
		return
	}
	w := res.Window
	line := fmt.Sprintf("%s: %s z=%d %dx%d+%d+%d", w.ID, windowState(*w), w.Z, w.Width, w.Height, w.X, w.Y)
	if res.Action != "" {
		line += " (" + res.Action + ")"
	}
	fmt.Println(line)
}

func displayOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
