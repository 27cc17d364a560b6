package app

import (
	"strings"

	"github.com/byxorna/stopover/pkg/itinerary"
	"github.com/byxorna/stopover/pkg/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldAddress
	fieldDate
	fieldClock
	fieldNotes
	fieldCost
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Address",
	"Date",
	"Time",
	"Notes",
	"Cost",
}

// form collects the raw input for a new stop. Enter advances; enter on
// the last field submits (handled by the page).
type form struct {
	inputs []textinput.Model
	focus  int
	err    error
}

func newForm() form {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldTitle].Placeholder = "Sagrada Família"
	inputs[fieldAddress].Placeholder = "C/ de Mallorca, 401, Barcelona"
	inputs[fieldDate].Placeholder = "2006-01-02"
	inputs[fieldDate].CharLimit = 10
	inputs[fieldClock].Placeholder = "15:04"
	inputs[fieldClock].CharLimit = 5
	inputs[fieldNotes].Placeholder = "book tickets ahead"
	inputs[fieldCost].Placeholder = "0"
	inputs[fieldCost].CharLimit = 12

	return form{inputs: inputs}
}

func (f form) focusCmd() tea.Cmd {
	return f.inputs[f.focus].Focus()
}

func (f form) onLastField() bool {
	return f.focus == fieldCount-1
}

func (f form) params() itinerary.AddParams {
	return itinerary.AddParams{
		Title:   f.inputs[fieldTitle].Value(),
		Address: f.inputs[fieldAddress].Value(),
		Date:    f.inputs[fieldDate].Value(),
		Clock:   f.inputs[fieldClock].Value(),
		Notes:   f.inputs[fieldNotes].Value(),
		Cost:    f.inputs[fieldCost].Value(),
	}
}

func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "enter", "down":
			return f.setFocus((f.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) setFocus(i int) (form, tea.Cmd) {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f, f.inputs[f.focus].Focus()
}

func (f form) View() string {
	var b strings.Builder
	b.WriteString(ui.GradientTitle("New stop") + "\n\n")
	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			b.WriteString(ui.FuchsiaFg.Render(label))
		} else {
			b.WriteString(ui.BrightGrayFg.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.err != nil {
		b.WriteString("\n" + ui.RedFg.Render(f.err.Error()))
	}
	b.WriteString("\n" + ui.HelpStyle.Render("enter next • enter on cost saves • esc cancel"))
	return b.String()
}
