package palette

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listItem adapts an Item to bubbles/list.
type listItem struct {
	item Item
}

func (i listItem) Title() string {
	if i.item.IsActive {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●") + " " + i.item.Label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("·") + " " + i.item.Label
}

func (i listItem) Description() string { return i.item.Detail }

func (i listItem) FilterValue() string { return i.item.Label }

// listModel is the bubbletea model behind the built-in backend.
type listModel struct {
	list      list.Model
	chosen    *Item
	cancelled bool
}

func newListModel(prompt string, items []Item) listModel {
	entries := make([]list.Item, len(items))
	selected := -1
	for i, it := range items {
		entries[i] = listItem{item: it}
		if it.IsActive && selected < 0 {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(entries, delegate, 0, 0)
	l.Title = prompt
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	if selected >= 0 {
		l.Select(selected)
	}

	return listModel{list: l}
}

// Init implements tea.Model.
func (m listModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(listItem); ok {
				chosen := it.item
				m.chosen = &chosen
			}
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m listModel) View() string {
	return m.list.View()
}

// listBackend runs the picker in the current terminal.
type listBackend struct{}

// NewListBackend returns the built-in terminal picker.
func NewListBackend() Backend {
	return listBackend{}
}

func (listBackend) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}
	final, err := tea.NewProgram(newListModel(prompt, items), tea.WithAltScreen()).Run()
	if err != nil {
		return Item{}, fmt.Errorf("palette: %w", err)
	}
	m, ok := final.(listModel)
	if !ok || m.cancelled || m.chosen == nil {
		return Item{}, ErrCancelled
	}
	return *m.chosen, nil
}
