package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// ErrNotCount is returned by Count for input that is not a whole number.
var ErrNotCount = errors.New("enter a whole number, or leave blank")

// TextInput wraps bubbles/textinput. Numeric inputs drop non-digit keys and
// parse with Count.
type TextInput struct {
	Model   textinput.Model
	Numeric bool
	// MaxValue bounds Count; zero means no bound.
	MaxValue int
}

// NewTextInput creates a focused text input holding at most charLimit
// characters.
func NewTextInput(placeholder string, numeric bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{Model: ti, Numeric: numeric}
}

// NewCountInput creates a numeric input prefilled with value, or blank
// when value is not positive.
func NewCountInput(placeholder string, value, maxValue int) TextInput {
	t := NewTextInput(placeholder, true, len(strconv.Itoa(maxValue)))
	t.MaxValue = maxValue
	if value > 0 {
		t.Model.SetValue(strconv.Itoa(value))
	}
	return t
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Numeric {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
			for _, r := range kmsg.Text {
				if r < '0' || r > '9' {
					return t, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the input with surrounding whitespace removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Count parses the input as a non-negative whole number. Blank input is
// zero.
func (t TextInput) Count() (int, error) {
	v := t.Value()
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, ErrNotCount
	}
	if t.MaxValue > 0 && n > t.MaxValue {
		return 0, fmt.Errorf("enter at most %d", t.MaxValue)
	}
	return n, nil
}
