package tui

import (
	"testing"

	"termchess/internal/core"
	"termchess/internal/game"
	"termchess/internal/render"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	r, err := render.New(render.DefaultOptions())
	require.NoError(t, err)
	return NewModel(game.New(), r)
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, ch := range text {
		next, _ := m.Update(tea.KeyPressMsg{Code: ch, Text: string(ch)})
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, key tea.KeyPressMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	return next.(Model), cmd
}

var (
	enter     = tea.KeyPressMsg{Code: tea.KeyEnter}
	backspace = tea.KeyPressMsg{Code: tea.KeyBackspace}
)

func TestTypeAndSubmit(t *testing.T) {
	m := newTestModel(t)

	m = typeText(t, m, "e2e4")
	assert.Equal(t, "e2e4", m.Input())

	m, cmd := press(t, m, enter)
	assert.Nil(t, cmd)
	assert.Empty(t, m.Input())
	assert.Equal(t, "White: e2e4", m.Status())
	assert.Equal(t, core.Black, m.game.Turn())
	assert.Contains(t, m.Render(), "Current player: Black")
}

func TestInvalidMove(t *testing.T) {
	m := newTestModel(t)

	m = typeText(t, m, "a1a2")
	m, _ = press(t, m, enter)
	assert.Equal(t, "Invalid move! (a1a2: destination occupied by the same side)", m.Status())
	assert.Equal(t, core.White, m.game.Turn())
}

func TestBackspaceAndLimit(t *testing.T) {
	m := newTestModel(t)

	m = typeText(t, m, "e2e44")
	m, _ = press(t, m, backspace)
	assert.Equal(t, "e2e4", m.Input())

	m = typeText(t, m, "abcdefgh")
	assert.Len(t, m.Input(), maxInput)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	m = typeText(t, m, "q")
	m, cmd := press(t, m, enter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())

	m = newTestModel(t)
	m, cmd = press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
}

func TestRender(t *testing.T) {
	m := newTestModel(t)
	out := m.Render()
	assert.Contains(t, out, "8 r n b q k b n r  8")
	assert.Contains(t, out, "Your move: ")
}
