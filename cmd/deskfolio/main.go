package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
	case "state":
		os.Exit(runState(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "open", "close", "minimize", "restore", "maximize", "toggle", "focus":
		os.Exit(runWindow(os.Args[1], os.Args[2:]))
	case "drag":
		os.Exit(runDrag(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "viewport":
		os.Exit(runViewport(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskfolio <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the headless desktop daemon (foreground)")
	fmt.Fprintln(w, "  tui                 Open the terminal desktop")
	fmt.Fprintln(w, "  palette             Pick a window to toggle")
	fmt.Fprintln(w, "  state               Print the window-manager snapshot")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  open <id>           Open a window")
	fmt.Fprintln(w, "  close <id>          Close a window")
	fmt.Fprintln(w, "  minimize <id>       Minimize a window")
	fmt.Fprintln(w, "  restore <id>        Restore a minimized window")
	fmt.Fprintln(w, "  maximize <id>       Toggle maximize")
	fmt.Fprintln(w, "  toggle <id>         Dock toggle (open/focus/minimize/restore)")
	fmt.Fprintln(w, "  focus <id>          Bring a window to the front")
	fmt.Fprintln(w, "  drag <id> <x> <y>   Move a window")
	fmt.Fprintln(w, "  resize <id> <w> <h> Resize a window")
	fmt.Fprintln(w, "  viewport <w> <h>    Update the clamp viewport")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config init         Write a config file interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskfolio <command> --help' for command-specific options.")
}

// parseFlags parses args and maps -h to exit code 0 and other errors to 2.
// ok is false when the caller should return code.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}
