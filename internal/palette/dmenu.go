package palette

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// dmenuBackend pipes one label per line into a dmenu-compatible launcher
// and reads the selection from stdout.
type dmenuBackend struct {
	command string
	// run is swapped in tests.
	run func(name string, args []string, stdin string) (string, int, error)
}

func newDmenuBackend(command string) *dmenuBackend {
	return &dmenuBackend{command: command, run: runCommand}
}

// indexOutput reports whether the launcher prints the selected row index
// instead of its text.
func (b *dmenuBackend) indexOutput() bool {
	return b.command == "rofi" || b.command == "fuzzel"
}

func (b *dmenuBackend) buildArgs(prompt string, active int) []string {
	switch b.command {
	case "rofi":
		args := []string{"-dmenu", "-i", "-p", prompt, "-format", "i"}
		if active >= 0 {
			args = append(args, "-a", strconv.Itoa(active))
		}
		return args
	case "fuzzel":
		return []string{"--dmenu", "--index", "--prompt", prompt + " "}
	case "wofi":
		return []string{"--dmenu", "--insensitive", "--prompt", prompt}
	default:
		return []string{"-i", "-p", prompt}
	}
}

func (b *dmenuBackend) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	lines := make([]string, len(items))
	active := -1
	for i, it := range items {
		lines[i] = formatLine(it)
		if it.IsActive && active < 0 {
			active = i
		}
	}

	out, code, err := b.run(b.command, b.buildArgs(prompt, active), strings.Join(lines, "\n")+"\n")
	if err != nil {
		return Item{}, fmt.Errorf("%s failed: %w", b.command, err)
	}
	// Every supported launcher exits 1 on escape.
	if code == 1 {
		return Item{}, ErrCancelled
	}
	if code != 0 {
		return Item{}, fmt.Errorf("%s exited with status %d", b.command, code)
	}
	return b.parseSelection(strings.TrimRight(out, "\n"), items, lines)
}

func (b *dmenuBackend) parseSelection(out string, items []Item, lines []string) (Item, error) {
	if out == "" {
		return Item{}, ErrCancelled
	}
	if b.indexOutput() {
		idx, err := strconv.Atoi(strings.TrimSpace(out))
		if err != nil || idx < 0 || idx >= len(items) {
			return Item{}, fmt.Errorf("%s returned invalid selection %q", b.command, out)
		}
		return items[idx], nil
	}
	for i, line := range lines {
		if line == out {
			return items[i], nil
		}
	}
	return Item{}, fmt.Errorf("%s returned unknown selection %q", b.command, out)
}

func formatLine(it Item) string {
	if it.Detail == "" {
		return it.Label
	}
	return it.Label + "  (" + it.Detail + ")"
}

func runCommand(name string, args []string, stdin string) (string, int, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", -1, fmt.Errorf("%w: %s", err, msg)
		}
		return "", -1, err
	}
	return string(out), 0, nil
}
