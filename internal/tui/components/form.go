package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rsaniceto14/investctl/internal/model"
	"github.com/rsaniceto14/investctl/internal/tui/themes"
)

// Form field positions. The type picker sits between name and amount.
const (
	fieldName = iota
	fieldType
	fieldAmount
	fieldDate
	fieldCount
)

const formDateLayout = "2006-01-02"

// FormModel edits a single investment. Validation here is parse-level only
// (the inputs must form a well-typed record); business rules stay on the
// service side.
type FormModel struct {
	theme   themes.Theme
	errText string
	inputs  []textinput.Model
	types   []string
	typeIdx int
	focus   int
	id      int64
	isNew   bool
}

// NewFormModel builds the form. A nil investment starts a blank create form;
// otherwise the fields are pre-filled for editing.
func NewFormModel(inv *model.Investment, theme themes.Theme) FormModel {
	name := textinput.New()
	name.Placeholder = "Tesouro Selic 2029"
	name.CharLimit = 120
	name.Focus()

	amount := textinput.New()
	amount.Placeholder = "1234.56"
	amount.CharLimit = 20

	date := textinput.New()
	date.Placeholder = formDateLayout
	date.CharLimit = 10

	m := FormModel{
		theme:  theme,
		inputs: []textinput.Model{name, amount, date},
		types:  model.KnownTypes(),
		isNew:  true,
	}

	if inv != nil {
		m.isNew = false
		m.id = inv.ID
		m.inputs[0].SetValue(inv.Name)
		m.inputs[1].SetValue(inv.Amount.String())
		m.inputs[2].SetValue(inv.Date.Format(formDateLayout))
		for i, t := range m.types {
			if t == inv.Type {
				m.typeIdx = i
			}
		}
		// A category outside the known set still has to be editable.
		if m.types[m.typeIdx] != inv.Type {
			m.types = append(m.types, inv.Type)
			m.typeIdx = len(m.types) - 1
		}
	}

	return m
}

// Update handles key and blink messages while the form is open.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedInput(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return FormCancelledMsg{} }

	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, textinput.Blink

	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, textinput.Blink

	case "left", "right":
		if m.focus == fieldType {
			step := 1
			if keyMsg.String() == "left" {
				step = len(m.types) - 1
			}
			m.typeIdx = (m.typeIdx + step) % len(m.types)
			return m, nil
		}

	case "enter":
		// Enter advances until the last field, then submits.
		if m.focus < fieldDate {
			m.setFocus(m.focus + 1)
			return m, textinput.Blink
		}
		return m.submit()
	}

	return m.updateFocusedInput(msg)
}

// SetSubmitError surfaces a failed save without losing what was typed.
func (m *FormModel) SetSubmitError(err error) {
	m.errText = err.Error()
}

func (m FormModel) updateFocusedInput(msg tea.Msg) (FormModel, tea.Cmd) {
	idx, ok := inputIndex(m.focus)
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(field int) {
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if idx, ok := inputIndex(field); ok {
		m.inputs[idx].Focus()
	}
}

// inputIndex maps a field position to its slot in inputs. The type picker
// has no text input.
func inputIndex(field int) (int, bool) {
	switch field {
	case fieldName:
		return 0, true
	case fieldAmount:
		return 1, true
	case fieldDate:
		return 2, true
	default:
		return 0, false
	}
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[0].Value())
	if name == "" {
		m.errText = "name is required"
		return m, nil
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(m.inputs[1].Value()))
	if err != nil {
		m.errText = "amount must be a number like 1234.56"
		return m, nil
	}
	if amount.IsNegative() {
		m.errText = "amount cannot be negative"
		return m, nil
	}

	date, err := time.Parse(formDateLayout, strings.TrimSpace(m.inputs[2].Value()))
	if err != nil {
		m.errText = "date must look like 2006-01-02"
		return m, nil
	}

	m.errText = ""
	saveMsg := SaveRequestedMsg{
		Investment: model.Investment{
			ID:     m.id,
			Name:   name,
			Type:   m.types[m.typeIdx],
			Amount: amount,
			Date:   date,
		},
		IsNew: m.isNew,
	}
	return m, func() tea.Msg { return saveMsg }
}

// View renders the form.
func (m FormModel) View() string {
	title := "New investment"
	if !m.isNew {
		title = "Edit investment"
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.fieldLabel("Name", fieldName) + "\n")
	b.WriteString(m.inputs[0].View() + "\n\n")
	b.WriteString(m.fieldLabel("Type", fieldType) + "\n")
	b.WriteString(m.renderTypePicker() + "\n\n")
	b.WriteString(m.fieldLabel("Amount (R$)", fieldAmount) + "\n")
	b.WriteString(m.inputs[1].View() + "\n\n")
	b.WriteString(m.fieldLabel("Date", fieldDate) + "\n")
	b.WriteString(m.inputs[2].View() + "\n")

	if m.errText != "" {
		b.WriteString("\n" + m.theme.StatusError.Render("✗ "+m.errText) + "\n")
	}

	b.WriteString("\n" + m.theme.Faint.Render("[Tab] Next field  [Enter] Save  [Esc] Cancel"))

	return m.theme.BorderedBox.Render(b.String())
}

func (m FormModel) fieldLabel(label string, field int) string {
	if m.focus == field {
		return m.theme.Bold.Foreground(m.theme.Primary).Render("> " + label)
	}
	return m.theme.Subtitle.Render("  " + label)
}

func (m FormModel) renderTypePicker() string {
	options := make([]string, 0, len(m.types))
	for i, t := range m.types {
		if i == m.typeIdx {
			options = append(options, m.theme.Selected.Render(" "+t+" "))
		} else {
			options = append(options, m.theme.Faint.Render(t))
		}
	}
	return strings.Join(options, "  ")
}
