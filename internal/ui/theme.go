package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                 string
	Title, Muted, Accent, Success, Error lipgloss.Style
	Pending, Done, Selected              lipgloss.Style
	BoxUnchecked, BoxChecked             string
	SymDone, SymPending, SymOK, SymFail  string
	Border                               lipgloss.Border
	BorderColor                          lipgloss.TerminalColor
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		SymDone:      "✔",
		SymPending:   "•",
		SymOK:        "✔",
		SymFail:      "✖",
		Border:       lipgloss.NormalBorder(),
		BorderColor:  lipgloss.Color("8"),
	}
}

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.BoxUnchecked, t.BoxChecked = "◻", "◼"
		t.Border = lipgloss.RoundedBorder()
		t.BorderColor = lipgloss.Color("13")
		current = t
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:         "mono",
			Title:        plain,
			Muted:        plain,
			Accent:       plain,
			Success:      plain,
			Error:        plain,
			Pending:      plain,
			Done:         plain,
			Selected:     plain.Reverse(true),
			BoxUnchecked: "[ ]",
			BoxChecked:   "[x]",
			SymDone:      "x",
			SymPending:   "-",
			SymOK:        "ok:",
			SymFail:      "error:",
			Border:       lipgloss.ASCIIBorder(),
			BorderColor:  lipgloss.NoColor{},
		}
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
