package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Emily9121/WifeyMOOC/internal/ui/theme"
)

// OptionList is a selectable option list. In multi mode space toggles
// the focused option; in single mode the focused option is the choice.
// Grading happens outside the component.
type OptionList struct {
	Options []string
	Multi   bool
	Focused int
	checked map[int]bool
}

// NewOptionList creates an option list with nothing selected.
func NewOptionList(options []string, multi bool) OptionList {
	return OptionList{
		Options: options,
		Multi:   multi,
		checked: make(map[int]bool),
	}
}

func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and toggling.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Focused > 0 {
			o.Focused--
		}
	case "down", "j":
		if o.Focused < len(o.Options)-1 {
			o.Focused++
		}
	case "space", " ":
		if o.Multi {
			o.checked[o.Focused] = !o.checked[o.Focused]
		}
	}

	return o, nil
}

// View renders the options with the focus cursor and check marks.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Focused {
			prefix = "> "
		}

		mark := "( )"
		if o.Multi {
			mark = "[ ]"
			if o.checked[i] {
				mark = "[x]"
			}
		} else if i == o.Focused {
			mark = "(*)"
		}

		line := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, opt)
		if i == o.Focused {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

// Selected returns the focused index in single mode.
func (o OptionList) Selected() int {
	return o.Focused
}

// Checked returns the toggled indices in ascending order.
func (o OptionList) Checked() []int {
	var out []int
	for i := range o.Options {
		if o.checked[i] {
			out = append(out, i)
		}
	}
	return out
}
