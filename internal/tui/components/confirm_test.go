package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsaniceto14/investctl/internal/model"
	"github.com/rsaniceto14/investctl/internal/tui/themes"
)

func confirmTarget() model.Investment {
	return model.Investment{
		ID:     42,
		Name:   "Bitcoin",
		Type:   "Criptomoedas",
		Amount: decimal.RequireFromString("31337.00"),
		Date:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	}
}

func TestConfirmAccept(t *testing.T) {
	for _, k := range []tea.KeyMsg{keyPress('y'), keyPress('Y'), {Type: tea.KeyEnter}} {
		m := NewConfirmModel(confirmTarget(), themes.Default)
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, "key %q", k.String())

		msg, ok := cmd().(DeleteConfirmedMsg)
		require.True(t, ok)
		assert.Equal(t, int64(42), msg.Investment.ID)
	}
}

func TestConfirmCancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{keyPress('n'), keyPress('q'), {Type: tea.KeyEsc}} {
		m := NewConfirmModel(confirmTarget(), themes.Default)
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, "key %q", k.String())
		assert.IsType(t, DialogCancelledMsg{}, cmd())
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m := NewConfirmModel(confirmTarget(), themes.Default)
	_, cmd := m.Update(keyPress('x'))
	assert.Nil(t, cmd)
}

func TestConfirmViewNamesTheRecord(t *testing.T) {
	m := NewConfirmModel(confirmTarget(), themes.Default)
	view := m.View()
	assert.Contains(t, view, "Bitcoin")
	assert.Contains(t, view, "31337.00")
	assert.Contains(t, view, "Criptomoedas")
}
