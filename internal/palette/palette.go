// Package palette shows a window picker and toggles the chosen window via
// the daemon. It can use an external dmenu-style launcher or a built-in
// terminal list.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single selectable entry in a palette menu.
type Item struct {
	Label    string // Display text
	Info     string // Hidden data returned on selection (window id)
	Detail   string // Secondary text (state, geometry)
	IsActive bool   // Highlighted as current/active
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	// Show displays items under prompt and returns the chosen one, or
	// ErrCancelled.
	Show(prompt string, items []Item) (Item, error)
}

// externalCommands lists the launchers tried by auto-detection, in priority
// order.
var externalCommands = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// DetectBackend returns the first available palette backend found in PATH, in
// priority order: rofi, fuzzel, wofi, dmenu.
func DetectBackend() (string, error) {
	for _, name := range externalCommands {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(externalCommands, ", "))
}

// NewBackend creates a backend by name.
//
// Supported names: auto, list, rofi, fuzzel, wofi, dmenu. auto prefers the
// built-in list when interactive is true.
func NewBackend(name string, interactive bool) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "auto":
		if interactive {
			return NewListBackend(), nil
		}
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		return NewBackend(detected, false)
	case "list":
		return NewListBackend(), nil
	case "rofi", "fuzzel", "wofi", "dmenu":
		if _, err := lookPath(name); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", name)
		}
		return newDmenuBackend(name), nil
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, list, rofi, fuzzel, wofi, dmenu)", name)
	}
}
