package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rsaniceto14/investctl/internal/model"
	"github.com/rsaniceto14/investctl/internal/tui/themes"
)

// ConfirmModel asks the user to confirm deleting one investment.
type ConfirmModel struct {
	theme      themes.Theme
	investment model.Investment
}

// NewConfirmModel builds a delete confirmation for the given investment.
func NewConfirmModel(inv model.Investment, theme themes.Theme) ConfirmModel {
	return ConfirmModel{theme: theme, investment: inv}
}

// Update resolves the dialog on y/n style keys and ignores everything else.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		confirmed := DeleteConfirmedMsg{Investment: m.investment}
		return m, func() tea.Msg { return confirmed }
	case "n", "N", "esc", "q":
		return m, func() tea.Msg { return DialogCancelledMsg{} }
	}

	return m, nil
}

// View renders the dialog.
func (m ConfirmModel) View() string {
	question := fmt.Sprintf("Delete %q?", m.investment.Name)
	detail := fmt.Sprintf("%s %s  R$ %s  %s",
		themes.GetTypeIcon(m.investment.Type),
		m.investment.Type,
		m.investment.Amount.StringFixed(2),
		m.investment.Date.Format("2006-01-02"),
	)

	return m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.StatusWarning.Render("Confirm delete"),
		"",
		m.theme.Bold.Render(question),
		m.theme.Subtitle.Render(detail),
		"",
		m.theme.Faint.Render("[y] Delete  [n] Cancel"),
	))
}
