package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rsaniceto14/investctl/internal/filter"
	"github.com/rsaniceto14/investctl/internal/tui/themes"
)

// View renders the full screen for the current mode.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	switch m.mode {
	case ModeForm:
		return m.centered(m.form.View())
	case ModeConfirm:
		return m.centered(m.confirm.View())
	case ModeHelp:
		return m.centered(m.renderHelp())
	default:
		return m.renderBrowse()
	}
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Investments"),
		"",
		m.theme.Faint.Render("Loading..."),
	)
	return m.centered(content)
}

func (m Model) renderBrowse() string {
	sections := []string{
		m.renderHeader(),
		m.renderFilterBar(),
		m.renderBody(),
		m.renderPagination(),
		m.renderStatusBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("💰 Investments")

	// While a load error is showing, no record-derived numbers are shown
	// either; the banner owns the screen until a load succeeds.
	if m.state.Err != nil {
		return title
	}

	count := len(m.filteredRecords())
	label := fmt.Sprintf("%d investments", count)
	if count == 1 {
		label = "1 investment"
	}
	if m.filters != (filter.Filters{}) {
		label = fmt.Sprintf("%d matching", count)
	}
	info := m.theme.Subtitle.Render(label)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(info)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + info
}

func (m Model) renderFilterBar() string {
	typeLabel := "All types"
	if m.filters.Type != "" {
		typeLabel = fmt.Sprintf("%s %s", themes.GetTypeIcon(m.filters.Type), m.filters.Type)
	}

	parts := []string{
		m.theme.Subtitle.Render("Type: ") + m.theme.Normal.Render(typeLabel),
	}

	if m.mode == ModeSearch {
		parts = append(parts, m.searchInput.View())
	} else if m.filters.Search != "" {
		parts = append(parts, m.theme.Subtitle.Render("Search: ")+m.theme.Highlighted.Render(m.filters.Search))
	}

	return strings.Join(parts, m.theme.Faint.Render("  |  "))
}

// renderBody shows the table, or whatever explains why there is none. A
// failed load hides the records entirely until a load succeeds again.
func (m Model) renderBody() string {
	if m.state.Err != nil {
		return m.theme.StatusError.Render(fmt.Sprintf("✗ could not load investments: %v", m.state.Err)) +
			"\n" + m.theme.Faint.Render("Press r to reload.")
	}

	visible := m.visibleRecords()
	if len(visible) == 0 {
		if len(m.filteredRecords()) == 0 {
			if m.filters != (filter.Filters{}) {
				return m.theme.Faint.Render("No investments match the current filters.")
			}
			return m.theme.Faint.Render("No investments yet. Press n to add one.")
		}
		// The current page starts past the end of the filtered records.
		return m.theme.Faint.Render("Nothing on this page.")
	}

	return m.table.View()
}

// renderPagination shows nothing at all when there are no pages to show or
// when a load error blocks the records the page count would be derived from.
func (m Model) renderPagination() string {
	if m.state.Err != nil {
		return ""
	}
	total := m.totalPages()
	if total == 0 {
		return ""
	}

	label := fmt.Sprintf("Page %d of %d", m.state.Page, total)

	prev := m.theme.Faint.Render("← h")
	if m.state.Page > 1 {
		prev = m.theme.Normal.Render("← h")
	}
	next := m.theme.Faint.Render("l →")
	if m.state.Page < total {
		next = m.theme.Normal.Render("l →")
	}

	line := prev + "  " + m.theme.Bold.Render(label) + "  " + next
	if m.state.Loading {
		line += "  " + m.theme.Faint.Render("loading...")
	}
	return line
}

func (m Model) renderStatusBar() string {
	if m.noticeText != "" {
		style := m.theme.StatusInfo
		switch m.noticeLevel {
		case noticeSuccess:
			style = m.theme.StatusSuccess
		case noticeError:
			style = m.theme.StatusError
		}
		return style.Render(m.noticeText)
	}

	return m.theme.Faint.Render("? help  / search  t type  n new  e edit  d delete  r reload  q quit")
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, row := range m.keymap.FullHelp() {
		for _, binding := range row {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				m.theme.Highlighted.Render(fmt.Sprintf("%-12s", binding.Help().Key)),
				m.theme.Normal.Render(binding.Help().Desc),
			))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Faint.Render("Press any key to go back."))
	return m.theme.Box.Render(b.String())
}

func (m Model) centered(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
