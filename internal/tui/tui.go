// Package tui is a full-screen front-end for a single game.
package tui

import (
	"fmt"
	"strings"

	"termchess/internal/game"
	"termchess/internal/render"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"
)

const maxInput = 8

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Model is the bubbletea model: typed characters build a move that enter
// submits to the game
type Model struct {
	game     *game.Game
	renderer *render.Renderer
	input    string
	status   string
	failed   bool
	quitting bool
}

func NewModel(g *game.Game, r *render.Renderer) Model {
	return Model{
		game:     g,
		renderer: r,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			text := strings.TrimSpace(m.input)
			m.input = ""
			if text == "q" {
				m.quitting = true
				return m, tea.Quit
			}
			if text != "" {
				m.submit(text)
			}

		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}

		default:
			if len(msg.String()) == 1 && len(m.input) < maxInput {
				m.input += msg.String()
			}
		}
	}
	return m, nil
}

func (m *Model) submit(text string) {
	mover := m.game.Turn()
	mv, verdict, err := m.game.PlayText(text)
	if err != nil {
		m.failed = true
		if errors.Cause(err) == game.ErrInvalidMove {
			m.status = fmt.Sprintf("Invalid move! (%s: %s)", text, verdict.Reason)
			return
		}
		m.status = err.Error()
		return
	}
	m.failed = false
	m.status = fmt.Sprintf("%s: %s", mover, mv)
}

func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	view := tea.NewView(m.Render())
	view.AltScreen = true
	return view
}

// Render draws the screen content
func (m Model) Render() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Chess") + "\n\n")
	sb.WriteString(m.renderer.Render(m.game.Board()) + "\n\n")
	sb.WriteString(m.renderer.Status(m.game.Turn()) + "\n")
	sb.WriteString("Your move: " + m.input + "\n")

	if m.status != "" {
		if m.failed {
			sb.WriteString(errorStyle.Render(m.status) + "\n")
		} else {
			sb.WriteString(m.status + "\n")
		}
	}

	sb.WriteString("\n" + mutedStyle.Render("enter: submit  q+enter, esc: quit"))
	return sb.String()
}

func (m Model) Input() string {
	return m.input
}

func (m Model) Status() string {
	return m.status
}

func (m Model) Quitting() bool {
	return m.quitting
}
