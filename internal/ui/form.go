package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptforge/prompt-forge/internal/models"
)

// control kinds mirror the field kinds a template can declare
const (
	controlText = iota
	controlTextarea
	controlSelect
)

// fieldControl binds one template field to its interactive widget
type fieldControl struct {
	field     models.Field
	kind      int
	input     textinput.Model
	area      textarea.Model
	optionIdx int // index into field.Options for select controls
}

// FieldForm collects values for a template's fields
type FieldForm struct {
	template *models.Template
	controls []fieldControl
	focused  int
	width    int
}

// NewFieldForm builds a form from the template's field descriptors.
// Defaults pre-populate their controls so the user only edits what they
// want to change.
func NewFieldForm(template *models.Template) *FieldForm {
	var controls []fieldControl

	for _, field := range template.Fields {
		control := fieldControl{field: field}

		switch field.Kind {
		case "textarea":
			control.kind = controlTextarea
			ta := textarea.New()
			ta.ShowLineNumbers = false
			ta.SetWidth(60)
			ta.SetHeight(4)
			if field.MaxLength > 0 {
				ta.CharLimit = field.MaxLength
			}
			if def := template.DefaultFor(field.Key); def != "" {
				ta.SetValue(def)
			}
			control.area = ta
		case "select":
			control.kind = controlSelect
			control.optionIdx = -1
			if def := template.DefaultFor(field.Key); def != "" {
				for i, option := range field.Options {
					if option == def {
						control.optionIdx = i
						break
					}
				}
			}
		default:
			control.kind = controlText
			ti := textinput.New()
			ti.Width = 50
			if field.MaxLength > 0 {
				ti.CharLimit = field.MaxLength
			}
			if def := template.DefaultFor(field.Key); def != "" {
				ti.SetValue(def)
			}
			control.input = ti
		}

		controls = append(controls, control)
	}

	form := &FieldForm{
		template: template,
		controls: controls,
	}
	form.focus(0)
	return form
}

// Values returns the current selections keyed by field key. Unfilled
// controls are omitted so the compiler reports them as placeholders.
func (f *FieldForm) Values() map[string]string {
	values := make(map[string]string, len(f.controls))
	for _, control := range f.controls {
		var value string
		switch control.kind {
		case controlTextarea:
			value = control.area.Value()
		case controlSelect:
			if control.optionIdx >= 0 && control.optionIdx < len(control.field.Options) {
				value = control.field.Options[control.optionIdx]
			}
		default:
			value = control.input.Value()
		}
		if value != "" {
			values[control.field.Key] = value
		}
	}
	return values
}

// Update handles key events for the focused control. It returns true when
// the user submits the form.
func (f *FieldForm) Update(msg tea.Msg) (tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg), false
	}

	switch keyMsg.String() {
	case "tab", "down":
		// in a textarea, down moves the cursor; tab always advances
		if keyMsg.String() == "down" && f.currentKind() == controlTextarea {
			return f.updateFocused(msg), false
		}
		f.focusNext()
		return nil, false
	case "shift+tab", "up":
		if keyMsg.String() == "up" && f.currentKind() == controlTextarea {
			return f.updateFocused(msg), false
		}
		f.focusPrev()
		return nil, false
	case "left", "right":
		if f.currentKind() == controlSelect {
			f.cycleOption(keyMsg.String() == "right")
			return nil, false
		}
		return f.updateFocused(msg), false
	case "ctrl+s":
		return nil, true
	case "enter":
		if f.currentKind() == controlTextarea {
			return f.updateFocused(msg), false
		}
		if f.focused == len(f.controls)-1 {
			return nil, true
		}
		f.focusNext()
		return nil, false
	default:
		return f.updateFocused(msg), false
	}
}

func (f *FieldForm) currentKind() int {
	if len(f.controls) == 0 {
		return controlText
	}
	return f.controls[f.focused].kind
}

func (f *FieldForm) updateFocused(msg tea.Msg) tea.Cmd {
	if len(f.controls) == 0 {
		return nil
	}
	var cmd tea.Cmd
	control := &f.controls[f.focused]
	switch control.kind {
	case controlTextarea:
		control.area, cmd = control.area.Update(msg)
	case controlText:
		control.input, cmd = control.input.Update(msg)
	}
	return cmd
}

func (f *FieldForm) cycleOption(forward bool) {
	control := &f.controls[f.focused]
	n := len(control.field.Options)
	if n == 0 {
		return
	}
	if forward {
		control.optionIdx = (control.optionIdx + 1) % n
	} else {
		if control.optionIdx <= 0 {
			control.optionIdx = n - 1
		} else {
			control.optionIdx--
		}
	}
}

func (f *FieldForm) focusNext() {
	f.blur(f.focused)
	f.focused = (f.focused + 1) % len(f.controls)
	f.focus(f.focused)
}

func (f *FieldForm) focusPrev() {
	f.blur(f.focused)
	f.focused--
	if f.focused < 0 {
		f.focused = len(f.controls) - 1
	}
	f.focus(f.focused)
}

func (f *FieldForm) focus(i int) {
	if i >= len(f.controls) {
		return
	}
	switch f.controls[i].kind {
	case controlTextarea:
		f.controls[i].area.Focus()
	case controlText:
		f.controls[i].input.Focus()
	}
}

func (f *FieldForm) blur(i int) {
	if i >= len(f.controls) {
		return
	}
	switch f.controls[i].kind {
	case controlTextarea:
		f.controls[i].area.Blur()
	case controlText:
		f.controls[i].input.Blur()
	}
}

// SetWidth resizes the form's controls
func (f *FieldForm) SetWidth(width int) {
	f.width = width
	for i := range f.controls {
		switch f.controls[i].kind {
		case controlTextarea:
			f.controls[i].area.SetWidth(min(width-6, 80))
		case controlText:
			f.controls[i].input.Width = min(width-10, 70)
		}
	}
}

// View renders the form
func (f *FieldForm) View() string {
	var b strings.Builder

	for i, control := range f.controls {
		label := control.field.Label
		if label == "" {
			label = control.field.Key
		}
		if control.field.Required {
			label += " *"
		}
		if i == f.focused {
			b.WriteString(StyleSelected.Render(label))
		} else {
			b.WriteString(StyleFormLabel.Render(label))
		}
		b.WriteString("\n")

		switch control.kind {
		case controlTextarea:
			b.WriteString(control.area.View())
		case controlSelect:
			var opts []string
			for j, option := range control.field.Options {
				if j == control.optionIdx {
					opts = append(opts, StyleSelected.Render(option))
				} else {
					opts = append(opts, StyleUnselected.Render(option))
				}
			}
			b.WriteString("  " + strings.Join(opts, " "))
		default:
			b.WriteString(control.input.View())
		}
		b.WriteString("\n\n")
	}

	if len(f.controls) == 0 {
		b.WriteString(StyleTextDim.Render("This template has no fields to fill."))
		b.WriteString("\n\n")
	}

	b.WriteString(StyleFormHelp.Render(fmt.Sprintf(
		"tab/shift+tab: move • ←/→: choose option • ctrl+s: compile • esc: back (%d fields)",
		len(f.controls))))
	return b.String()
}
