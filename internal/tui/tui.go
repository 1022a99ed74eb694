// Package tui is the full-screen task list. Every edit goes straight to the
// store; the list is rebuilt from it after each change.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/mytodo/internal/model"
	"github.com/idilsaglam/mytodo/internal/ui"
)

// Store is the subset of the task store the list needs.
type Store interface {
	Add(title string, due *model.Date) model.Task
	List() []model.Task
	Toggle(id int) bool
	Delete(id int) bool
	Stats() (done, pending int)
}

// listItem adapts a task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) Title() string       { return i.task.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.task.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+ui.TaskLine(it.task))
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// Model is the Bubble Tea model over a Store.
type Model struct {
	store Store
	list  list.Model

	// Inline add
	adding bool
	input  textinput.Model

	// Pending delete, waiting for y/n
	confirmID int

	status string
}

func New(store Store) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, toggleBind, deleteBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, toggleBind, deleteBind} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task title..."
	ti.CharLimit = 200

	m := Model{store: store, list: l, input: ti}
	m.refresh()
	return m
}

// Run opens the list in the alternate screen until the user quits.
func Run(store Store) error {
	_, err := tea.NewProgram(New(store), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) refresh() tea.Cmd {
	tasks := m.store.List()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, listItem{task: t})
	}
	d, p := m.store.Stats()
	m.list.Title = ui.Header(d, p)
	return m.list.SetItems(items)
}

func (m Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		if m.confirmID != 0 {
			return m.updateConfirm(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "x":
			if t, ok := m.selected(); ok && m.store.Toggle(t.ID) {
				m.status = fmt.Sprintf("toggled [%d]", t.ID)
				cmd := m.refresh()
				return m, cmd
			}
			return m, nil
		case "d":
			if t, ok := m.selected(); ok {
				m.confirmID = t.ID
				m.status = fmt.Sprintf("Delete [%d] %s? y/n", t.ID, t.Title)
			}
			return m, nil
		case "a":
			m.adding = true
			m.status = ""
			m.input.SetValue("")
			cmd := m.input.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		t := m.store.Add(title, nil)
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		m.status = fmt.Sprintf("Created: [%d] %s", t.ID, t.Title)
		cmd := m.refresh()
		m.list.Select(len(m.list.Items()) - 1)
		return m, cmd
	case "esc":
		m.adding = false
		m.status = ""
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	m.confirmID = 0
	switch msg.String() {
	case "ctrl+c":
		m.status = ""
		return m, tea.Quit
	case "y", "Y":
		if m.store.Delete(id) {
			m.status = fmt.Sprintf("removed [%d]", id)
			cmd := m.refresh()
			return m, cmd
		}
		m.status = fmt.Sprintf("no task with id %d", id)
	default:
		m.status = "kept"
	}
	return m, nil
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.Current().BorderColor).
			Padding(0, 1)
		title := "Add new task"
		if m.status != "" {
			title += " - " + ui.Current().Error.Render(m.status)
		}
		content += "\n" + bar.Render(title+"\n"+m.input.View())
	} else if m.status != "" {
		content += "\n" + ui.Current().Muted.Render(m.status)
	}
	return lipgloss.NewStyle().
		Border(ui.Current().Border).
		BorderForeground(ui.Current().BorderColor).
		Padding(0, 1).
		Render(content)
}
