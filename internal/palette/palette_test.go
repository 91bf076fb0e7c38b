package palette

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/deskfolio/internal/desktop"
	"github.com/1broseidon/deskfolio/internal/ipc"
	"github.com/1broseidon/deskfolio/internal/wm"
)

var testSnapshot = &desktop.Snapshot{
	Windows: []wm.Window{
		{ID: "about", Title: "About Me", Open: true, Z: 21, X: 100, Y: 80, Width: 800, Height: 600},
		{ID: "work", Title: "Work", Z: 10},
		{ID: "skills", Open: true, Minimized: true, Z: 12},
	},
	Top:     21,
	Focused: "about",
}

func TestWindowItems(t *testing.T) {
	want := []Item{
		{Label: "About Me", Info: "about", Detail: "800x600+100+80", IsActive: true},
		{Label: "Work", Info: "work", Detail: "closed"},
		{Label: "skills", Info: "skills", Detail: "minimized"},
	}
	if diff := cmp.Diff(want, WindowItems(testSnapshot)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

type fakeBackend struct {
	pick int
	err  error
	seen []Item
}

func (f *fakeBackend) Show(_ string, items []Item) (Item, error) {
	f.seen = items
	if f.err != nil {
		return Item{}, f.err
	}
	return items[f.pick], nil
}

type fakeDaemon struct {
	toggled []wm.ID
}

func (f *fakeDaemon) GetState() (*desktop.Snapshot, error) { return testSnapshot, nil }

func (f *fakeDaemon) Window(cmd ipc.CommandType, id wm.ID) (*desktop.Result, error) {
	if cmd != ipc.CommandToggle {
		return nil, fmt.Errorf("unexpected command %s", cmd)
	}
	f.toggled = append(f.toggled, id)
	return &desktop.Result{Applied: true, Action: "open"}, nil
}

func TestRunTogglesChoice(t *testing.T) {
	d := &fakeDaemon{}
	res, err := Run(d, &fakeBackend{pick: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res == nil || res.Action != "open" {
		t.Fatalf("result = %+v", res)
	}
	if diff := cmp.Diff([]wm.ID{"work"}, d.toggled); diff != "" {
		t.Fatalf("toggled mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCancelled(t *testing.T) {
	d := &fakeDaemon{}
	res, err := Run(d, &fakeBackend{err: ErrCancelled})
	if err != nil || res != nil {
		t.Fatalf("Run = %+v, %v; want nil, nil", res, err)
	}
	if len(d.toggled) != 0 {
		t.Fatalf("toggled on cancel: %v", d.toggled)
	}
}

func TestDmenuBackendShow(t *testing.T) {
	items := WindowItems(testSnapshot)

	tests := []struct {
		name     string
		command  string
		out      string
		code     int
		wantArgs []string
		want     string
		wantErr  error
	}{
		{
			name:     "rofi index output",
			command:  "rofi",
			out:      "2\n",
			wantArgs: []string{"-dmenu", "-i", "-p", "Windows", "-format", "i", "-a", "0"},
			want:     "skills",
		},
		{
			name:     "fuzzel index output",
			command:  "fuzzel",
			out:      "1\n",
			wantArgs: []string{"--dmenu", "--index", "--prompt", "Windows "},
			want:     "work",
		},
		{
			name:     "dmenu text output",
			command:  "dmenu",
			out:      "Work  (closed)\n",
			wantArgs: []string{"-i", "-p", "Windows"},
			want:     "work",
		},
		{
			name:    "escape",
			command: "wofi",
			code:    1,
			wantErr: ErrCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotArgs []string
			var gotStdin string
			b := newDmenuBackend(tt.command)
			b.run = func(name string, args []string, stdin string) (string, int, error) {
				gotArgs, gotStdin = args, stdin
				return tt.out, tt.code, nil
			}

			got, err := b.Show(Prompt, items)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Show: %v", err)
			}
			if got.Info != tt.want {
				t.Fatalf("selected %q, want %q", got.Info, tt.want)
			}
			if diff := cmp.Diff(tt.wantArgs, gotArgs); diff != "" {
				t.Fatalf("args mismatch (-want +got):\n%s", diff)
			}
			if gotStdin != "About Me  (800x600+100+80)\nWork  (closed)\nskills  (minimized)\n" {
				t.Fatalf("stdin = %q", gotStdin)
			}
		})
	}
}

func TestNewBackend(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		if name == "wofi" {
			return "/usr/bin/wofi", nil
		}
		return "", errors.New("not found")
	}

	if b, err := NewBackend("auto", true); err != nil {
		t.Fatalf("auto interactive: %v", err)
	} else if _, ok := b.(listBackend); !ok {
		t.Fatalf("auto interactive = %T, want listBackend", b)
	}

	b, err := NewBackend("auto", false)
	if err != nil {
		t.Fatalf("auto: %v", err)
	}
	if db, ok := b.(*dmenuBackend); !ok || db.command != "wofi" {
		t.Fatalf("auto = %#v, want wofi", b)
	}

	if _, err := NewBackend("rofi", false); err == nil {
		t.Fatal("expected error for missing rofi")
	}
	if _, err := NewBackend("zenity", false); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestListModelSelection(t *testing.T) {
	m := newListModel(Prompt, WindowItems(testSnapshot))
	if got := m.list.Index(); got != 0 {
		t.Fatalf("initial index = %d, want focused item 0", got)
	}
}
