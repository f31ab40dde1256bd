package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoExec(text string) string { return "ran: " + text }

func TestRankMatchesPartialInput(t *testing.T) {
	m := New(echoExec)

	suggestions := m.rank("整理")
	require.NotEmpty(t, suggestions)
	for _, s := range suggestions {
		assert.Contains(t, s, "整理")
	}
	assert.LessOrEqual(t, len(suggestions), maxShellSuggestions)
}

func TestRankEmptyInput(t *testing.T) {
	m := New(echoExec)
	assert.Empty(t, m.rank(""))
	assert.Empty(t, m.rank("   "))
}

func TestEnterRunsCommand(t *testing.T) {
	m := New(echoExec)
	m.input.SetValue("查找所有图片")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	result, ok := msg.(resultMsg)
	require.True(t, ok)
	assert.Contains(t, string(result), "> 查找所有图片")
	assert.Contains(t, string(result), "ran: 查找所有图片")

	shell := updated.(Model)
	assert.Empty(t, shell.input.Value())
}

func TestEnterIgnoresEmptyInput(t *testing.T) {
	m := New(echoExec)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestTabCompletesSelection(t *testing.T) {
	m := New(echoExec)
	m.suggestions = []string{"按类型整理当前目录", "整理桌面文件"}
	m.selected = 1

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	shell := updated.(Model)
	assert.Equal(t, "整理桌面文件", shell.input.Value())
	assert.Empty(t, shell.suggestions)
}

func TestQuitKeys(t *testing.T) {
	m := New(echoExec)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, updated.(Model).quitting)
}
