package main

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/bridge-runtime/bridge"
)

func typeValue(m *interactiveModel, s string) *interactiveModel {
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(*interactiveModel)
}

func TestInteractiveModel_Submit(t *testing.T) {
	m := newInteractiveModel(bridge.VariantIndexed)
	m = typeValue(m, "42")

	require.NoError(t, m.err)
	assert.Equal(t, 1, m.calls)
	assert.Equal(t, []string{"test xx from rust [42]\n2"}, m.history)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "test xx from rust [42]")
	assert.Contains(t, m.View(), "calls 1")
}

func TestInteractiveModel_PlainVariant(t *testing.T) {
	m := typeValue(newInteractiveModel(bridge.VariantPlain), "0")
	assert.Equal(t, []string{"test from rust [0]"}, m.history)
	assert.Contains(t, m.View(), "variant plain")
}

func TestInteractiveModel_InvalidValue(t *testing.T) {
	m := typeValue(newInteractiveModel(bridge.VariantIndexed), "abc")

	require.Error(t, m.err)
	assert.Zero(t, m.calls)
	assert.Empty(t, m.history)
	assert.Contains(t, m.View(), "Error:")

	assert.Contains(t, m.View(), "calls 0")

	m = typeValue(m, "5")
	assert.NoError(t, m.err)
	assert.Equal(t, 1, m.calls)
	assert.Contains(t, m.View(), "calls 1")
}

func TestInteractiveModel_EmptyEnter(t *testing.T) {
	m := newInteractiveModel(bridge.VariantIndexed)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*interactiveModel)
	assert.Zero(t, m.calls)
	assert.NoError(t, m.err)
}

func TestInteractiveModel_HistoryLimit(t *testing.T) {
	m := newInteractiveModel(bridge.VariantPlain)
	for i := 0; i < historyLimit+5; i++ {
		m = typeValue(m, fmt.Sprint(i))
	}
	require.Len(t, m.history, historyLimit)
	assert.Equal(t, "test from rust [5]", m.history[0])
	assert.Equal(t, fmt.Sprintf("test from rust [%d]", historyLimit+4), m.history[historyLimit-1])
	assert.Equal(t, historyLimit+5, m.calls)
}

func TestInteractiveModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newInteractiveModel(bridge.VariantIndexed)
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}
