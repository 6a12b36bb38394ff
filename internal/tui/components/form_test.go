package components

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsaniceto14/investctl/internal/model"
	"github.com/rsaniceto14/investctl/internal/tui/themes"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func typeText(m FormModel, text string) FormModel {
	for _, r := range text {
		m, _ = m.Update(keyPress(r))
	}
	return m
}

// submitForm presses enter until the form either produces a message or
// settles on a validation error.
func submitForm(t *testing.T, m FormModel) (FormModel, tea.Msg) {
	t.Helper()
	for i := 0; i < fieldCount; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(enter())
		if cmd != nil {
			return m, cmd()
		}
	}
	return m, nil
}

func TestFormStartsBlankForCreate(t *testing.T) {
	m := NewFormModel(nil, themes.Default)
	view := m.View()
	assert.Contains(t, view, "New investment")
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Amount")
}

func TestFormSubmitBuildsInvestment(t *testing.T) {
	m := NewFormModel(nil, themes.Default)

	m = typeText(m, "Tesouro IPCA+ 2035")
	m, _ = m.Update(enter()) // to type picker
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(enter()) // to amount
	m = typeText(m, "1500.50")
	m, _ = m.Update(enter()) // to date
	m = typeText(m, "2024-05-10")

	m, cmd := m.Update(enter())
	require.NotNil(t, cmd)

	msg, ok := cmd().(SaveRequestedMsg)
	require.True(t, ok)
	assert.True(t, msg.IsNew)
	assert.Zero(t, msg.Investment.ID)
	assert.Equal(t, "Tesouro IPCA+ 2035", msg.Investment.Name)
	assert.Equal(t, "Renda Fixa", msg.Investment.Type)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(msg.Investment.Amount))
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), msg.Investment.Date)
	assert.NotContains(t, m.View(), "✗")
}

func TestFormPrefillsForEdit(t *testing.T) {
	inv := model.Investment{
		ID:     7,
		Name:   "Apê Centro",
		Type:   "Imóveis",
		Amount: decimal.RequireFromString("250000"),
		Date:   time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC),
	}
	m := NewFormModel(&inv, themes.Default)
	assert.Contains(t, m.View(), "Edit investment")

	_, msg := submitForm(t, m)
	require.NotNil(t, msg)

	saved, ok := msg.(SaveRequestedMsg)
	require.True(t, ok)
	assert.False(t, saved.IsNew)
	assert.Equal(t, int64(7), saved.Investment.ID)
	assert.Equal(t, "Apê Centro", saved.Investment.Name)
	assert.Equal(t, "Imóveis", saved.Investment.Type)
	assert.True(t, inv.Amount.Equal(saved.Investment.Amount))
	assert.Equal(t, inv.Date, saved.Investment.Date)
}

func TestFormKeepsUnknownType(t *testing.T) {
	inv := model.Investment{
		ID:     3,
		Name:   "Debênture Vale",
		Type:   "Debêntures",
		Amount: decimal.RequireFromString("980.12"),
		Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	m := NewFormModel(&inv, themes.Default)

	_, msg := submitForm(t, m)
	require.NotNil(t, msg)
	saved, ok := msg.(SaveRequestedMsg)
	require.True(t, ok)
	assert.Equal(t, "Debêntures", saved.Investment.Type)
}

func TestFormValidation(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		date    string
		invName string
		wantErr string
	}{
		{
			name:    "empty name",
			invName: "",
			amount:  "100",
			date:    "2024-01-01",
			wantErr: "name is required",
		},
		{
			name:    "unparseable amount",
			invName: "CDB",
			amount:  "cem reais",
			date:    "2024-01-01",
			wantErr: "amount must be a number",
		},
		{
			name:    "negative amount",
			invName: "CDB",
			amount:  "-5",
			date:    "2024-01-01",
			wantErr: "amount cannot be negative",
		},
		{
			name:    "bad date",
			invName: "CDB",
			amount:  "100",
			date:    "10/05/2024",
			wantErr: "date must look like",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFormModel(nil, themes.Default)
			m = typeText(m, tt.invName)
			m, _ = m.Update(enter())
			m, _ = m.Update(enter())
			m = typeText(m, tt.amount)
			m, _ = m.Update(enter())
			m = typeText(m, tt.date)

			m, cmd := m.Update(enter())
			assert.Nil(t, cmd, "invalid input must not emit a save request")
			assert.Contains(t, m.View(), tt.wantErr)
		})
	}
}

func TestFormEscapeCancels(t *testing.T) {
	m := NewFormModel(nil, themes.Default)
	m = typeText(m, "half typed")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, FormCancelledMsg{}, cmd())
}

func TestFormShowsSubmitError(t *testing.T) {
	m := NewFormModel(nil, themes.Default)
	m.SetSubmitError(errors.New("service unavailable"))
	assert.Contains(t, m.View(), "service unavailable")
}

func TestFormFocusCycles(t *testing.T) {
	m := NewFormModel(nil, themes.Default)
	require.Equal(t, fieldName, m.focus)

	for i := 0; i < fieldCount; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, fieldName, m.focus, "tab wraps around")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldDate, m.focus)
}
