package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/plotforge/plotforge/pkg/theme"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newPreviewCmd creates the preview command: an interactive palette browser.
func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Interactively browse built-in palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := NewPaletteListModel()
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			m, ok := final.(PaletteListModel)
			if !ok || m.Selected == "" {
				return nil
			}

			printNewline()
			printSuccess("Selected %s", m.Selected)
			printNextStep("Render with it", fmt.Sprintf("plotforge render data.csv --theme %s", m.Selected))
			return nil
		},
	}
}

// paletteItem is one browsable palette with its resolved colors.
type paletteItem struct {
	Name   string
	Colors theme.ColorMapping
}

// PaletteListModel is the bubbletea model for interactive palette browsing.
type PaletteListModel struct {
	Palettes []paletteItem
	Cursor   int
	Selected string
}

// NewPaletteListModel loads every built-in palette into a browsable list.
func NewPaletteListModel() (PaletteListModel, error) {
	names := theme.Names()
	palettes := make([]paletteItem, 0, len(names))

	for _, name := range names {
		provider, err := theme.Builtin(name)
		if err != nil {
			return PaletteListModel{}, err
		}
		colors, err := provider.Colors()
		if err != nil {
			return PaletteListModel{}, err
		}
		derived, err := theme.Derived(colors)
		if err != nil {
			return PaletteListModel{}, err
		}
		palettes = append(palettes, paletteItem{Name: name, Colors: derived})
	}

	return PaletteListModel{Palettes: palettes}, nil
}

func (m PaletteListModel) Init() tea.Cmd {
	return nil
}

func (m PaletteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Palettes)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Palettes[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PaletteListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Palettes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, p := range m.Palettes {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-10s", cursor, p.Name)
		if i == m.Cursor {
			line = listSelectedStyle.Render(line)
		} else {
			line = listNormalStyle.Render(line)
		}

		for _, key := range []string{theme.KeyPrimary, theme.KeySecondary, theme.KeyAxis, theme.KeyGrid} {
			if hex, ok := p.Colors[key]; ok {
				line += " " + swatch(hex)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Detail panel for the palette under the cursor
	if len(m.Palettes) > 0 {
		p := m.Palettes[m.Cursor]
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
		b.WriteString("\n")
		for _, key := range []string{theme.KeyPrimary, theme.KeySecondary, theme.KeyAxis, theme.KeyGrid, theme.KeyLabel} {
			if hex, ok := p.Colors[key]; ok {
				b.WriteString(fmt.Sprintf("  %-10s %s %s\n", key, swatch(hex), listDimStyle.Render(hex)))
			}
		}
	}

	return b.String()
}
