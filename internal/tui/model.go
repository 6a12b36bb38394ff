package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rsaniceto14/investctl/internal/collection"
	"github.com/rsaniceto14/investctl/internal/filter"
	"github.com/rsaniceto14/investctl/internal/model"
	"github.com/rsaniceto14/investctl/internal/pagination"
	"github.com/rsaniceto14/investctl/internal/tui/components"
	"github.com/rsaniceto14/investctl/internal/tui/themes"
)

// Mode selects which surface owns the keyboard.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeForm
	ModeConfirm
	ModeHelp
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

// How long a status line notice stays visible.
const noticeTTL = 4 * time.Second

// Model holds the main TUI state.
type Model struct {
	service     Service
	noticeText  string
	keymap      KeyMap
	theme       themes.Theme
	searchInput textinput.Model
	table       table.Model
	form        components.FormModel
	confirm     components.ConfirmModel
	config      Config
	state       collection.State
	filters     filter.Filters
	noticeLevel noticeLevel
	noticeSeq   int
	typeIdx     int
	width       int
	height      int
	mode        Mode
	quitting    bool
	ready       bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		service: cfg.Service,
		keymap:  DefaultKeyMap(),
		theme:   cfg.Theme,
		config:  cfg,
		state:   collection.NewState(cfg.PageSize),
		width:   cfg.Width,
		height:  cfg.Height,
		mode:    ModeBrowse,
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "name contains..."
	m.searchInput.Prompt = "/ "
	m.searchInput.CharLimit = 80

	m.table = newInvestmentTable(cfg.Theme, cfg.PageSize)
	m.syncTable()

	return m
}

func newInvestmentTable(theme themes.Theme, pageSize int) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 34},
		{Title: "Type", Width: 18},
		{Title: "Amount", Width: 14},
		{Title: "Date", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = theme.Selected
	t.SetStyles(styles)

	return t
}

// Init initializes the model and kicks off the first page load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		func() tea.Msg { return reloadRequestMsg{} },
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case reloadRequestMsg:
		return m.startLoad()

	case investmentsLoadedMsg:
		m.state = m.state.ApplyLoad(msg.token, msg.investments, msg.err)
		m.ready = true
		m.syncTable()
		return m, nil

	case investmentDeletedMsg:
		if msg.err != nil {
			return m, m.setNotice(noticeError, fmt.Sprintf("delete failed: %v", msg.err))
		}
		m.state = m.state.Remove(msg.id)
		m.syncTable()
		return m, m.setNotice(noticeSuccess, "investment deleted")

	case investmentSavedMsg:
		if msg.err != nil {
			// Keep the form open so nothing typed is lost.
			m.form.SetSubmitError(msg.err)
			return m, nil
		}
		m.mode = ModeBrowse
		text := "investment updated"
		if msg.created {
			text = "investment created"
		}
		noticeCmd := m.setNotice(noticeSuccess, text)
		next, loadCmd := m.startLoad()
		return next, tea.Batch(noticeCmd, loadCmd)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.noticeText = ""
		}
		return m, nil

	case components.SaveRequestedMsg:
		return m, m.saveInvestment(msg.Investment, msg.IsNew)

	case components.FormCancelledMsg:
		m.mode = ModeBrowse
		return m, nil

	case components.DeleteConfirmedMsg:
		m.mode = ModeBrowse
		return m, m.deleteInvestment(msg.Investment.ID)

	case components.DialogCancelledMsg:
		m.mode = ModeBrowse
		return m, nil
	}

	return m.updateChild(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)

	case ModeForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case ModeConfirm:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd

	case ModeHelp:
		// Any key leaves help.
		m.mode = ModeBrowse
		return m, nil

	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		m.table.MoveUp(1)
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.table.MoveDown(1)
		return m, nil

	case key.Matches(msg, m.keymap.PrevPage):
		return m.changePage(m.state.Page - 1)

	case key.Matches(msg, m.keymap.NextPage):
		return m.changePage(m.state.Page + 1)

	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(m.filters.Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keymap.CycleType):
		m.cycleType()
		return m, nil

	case key.Matches(msg, m.keymap.ClearFilters):
		if m.filters == (filter.Filters{}) {
			return m, nil
		}
		m.filters = filter.Filters{}
		m.typeIdx = 0
		m.searchInput.SetValue("")
		m.applyFilterChange()
		return m, nil

	case key.Matches(msg, m.keymap.New):
		m.mode = ModeForm
		m.form = components.NewFormModel(nil, m.theme)
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Edit):
		inv, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		m.mode = ModeForm
		m.form = components.NewFormModel(&inv, m.theme)
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Delete):
		inv, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirm = components.NewConfirmModel(inv, m.theme)
		return m, nil

	case key.Matches(msg, m.keymap.Reload):
		return m.startLoad()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeBrowse
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.mode = ModeBrowse
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if m.filters.Search != "" {
			m.filters.Search = ""
			m.applyFilterChange()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != m.filters.Search {
		m.filters.Search = v
		m.applyFilterChange()
	}
	return m, cmd
}

func (m Model) updateChild(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case ModeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case ModeForm:
		m.form, cmd = m.form.Update(msg)
	case ModeConfirm:
		m.confirm, cmd = m.confirm.Update(msg)
	}
	return m, cmd
}

// filteredRecords applies the active filters to everything currently loaded.
func (m Model) filteredRecords() []model.Investment {
	return filter.Apply(m.state.Records, m.filters)
}

// totalPages is the local page count over the filtered records.
func (m Model) totalPages() int {
	return pagination.TotalPages(len(m.filteredRecords()), m.state.PageSize)
}

// visibleRecords is the slice of filtered records on the current page.
func (m Model) visibleRecords() []model.Investment {
	return pagination.Visible(m.filteredRecords(), m.state.Page, m.state.PageSize)
}

// changePage clamps the requested page against the local page count and,
// when the page actually changes, fetches that page from the service.
func (m Model) changePage(page int) (Model, tea.Cmd) {
	target := pagination.Clamp(page, m.totalPages())
	if target == m.state.Page {
		return m, nil
	}
	m.state = m.state.WithPage(target)
	return m.startLoad()
}

func (m Model) startLoad() (Model, tea.Cmd) {
	st, token := m.state.BeginLoad()
	m.state = st
	return m, m.fetchPage(token, st.Page, st.PageSize)
}

// applyFilterChange resets the view to the first page. Filters never touch
// the service; they only narrow what is already loaded.
func (m *Model) applyFilterChange() {
	m.state = m.state.WithPage(1)
	m.syncTable()
}

func (m *Model) cycleType() {
	options := typeOptions()
	m.typeIdx = (m.typeIdx + 1) % len(options)
	m.filters.Type = options[m.typeIdx]
	m.applyFilterChange()
}

// typeOptions is the type filter cycle. The empty string means no filter.
func typeOptions() []string {
	return append([]string{""}, model.KnownTypes()...)
}

// syncTable rebuilds the table rows from the currently visible records and
// keeps the cursor in range.
func (m *Model) syncTable() {
	visible := m.visibleRecords()
	rows := make([]table.Row, 0, len(visible))
	for _, inv := range visible {
		rows = append(rows, table.Row{
			inv.Name,
			fmt.Sprintf("%s %s", themes.GetTypeIcon(inv.Type), inv.Type),
			"R$ " + inv.Amount.StringFixed(2),
			inv.Date.Format("2006-01-02"),
		})
	}
	m.table.SetRows(rows)

	if len(rows) == 0 {
		m.table.SetCursor(0)
	} else if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

// selectedRecord resolves the table cursor back to the underlying record.
func (m Model) selectedRecord() (model.Investment, bool) {
	visible := m.visibleRecords()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(visible) {
		return model.Investment{}, false
	}
	return visible[idx], true
}

// setNotice replaces the status line notice and schedules its expiry. The
// sequence number keeps an old timer from clearing a newer notice.
func (m *Model) setNotice(level noticeLevel, text string) tea.Cmd {
	m.noticeSeq++
	m.noticeLevel = level
	m.noticeText = text

	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
