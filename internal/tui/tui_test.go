package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/roster/internal/config"
	"github.com/charmbracelet/roster/internal/customer"
	"github.com/charmbracelet/roster/internal/tui/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *appModel {
	t.Helper()
	t.Setenv("ROSTER_GLOBAL_CONFIG", t.TempDir())
	t.Setenv("ROSTER_GLOBAL_DATA", t.TempDir())
	cfg, err := config.Load(t.TempDir(), false)
	require.NoError(t, err)

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	d := customer.MustDataset(customer.Generate(40, 3, now))
	a := New(cfg, d).(*appModel)
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	return a
}

func keyPress(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code, Text: text})
}

func TestStatus(t *testing.T) {
	a := newTestApp(t)
	assert.Contains(t, a.View(), "Customers")
	assert.Contains(t, a.View(), "q quit")

	_, cmd := a.Update(util.InfoMsg{Type: util.InfoTypeWarn, Msg: "No customers selected", TTL: time.Millisecond})
	require.NotNil(t, cmd)
	assert.Contains(t, a.View(), "No customers selected")

	_, _ = a.Update(clearStatusMsg{seq: a.statusSeq - 1})
	assert.NotNil(t, a.status)

	_, _ = a.Update(cmd())
	assert.Nil(t, a.status)
}

func TestQuit(t *testing.T) {
	t.Run("q quits from the list", func(t *testing.T) {
		a := newTestApp(t)
		_, cmd := a.Update(keyPress('q', "q"))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("q is typed while searching", func(t *testing.T) {
		a := newTestApp(t)
		a.Update(keyPress('/', "/"))
		require.True(t, a.customers.Searching())
		_, cmd := a.Update(keyPress('q', "q"))
		if cmd != nil {
			done := make(chan tea.Msg, 1)
			go func() { done <- cmd() }()
			select {
			case msg := <-done:
				assert.NotEqual(t, tea.QuitMsg{}, msg)
			case <-time.After(100 * time.Millisecond):
			}
		}
	})
}

func TestInitHint(t *testing.T) {
	t.Run("shown once per project", func(t *testing.T) {
		a := newTestApp(t)
		cmd := a.initHint()
		require.NotNil(t, cmd)
		msg, ok := cmd().(util.InfoMsg)
		require.True(t, ok)
		assert.Equal(t, util.InfoTypeInfo, msg.Type)
		assert.Contains(t, msg.Msg, "roster config init")

		assert.Nil(t, a.initHint())
	})

	t.Run("not shown with a project config", func(t *testing.T) {
		a := newTestApp(t)
		path := filepath.Join(a.cfg.WorkingDir(), "roster.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
		assert.Nil(t, a.initHint())
	})
}
