package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Abort  key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes:    key.NewBinding(key.WithKeys("y", "Y")),
	No:     key.NewBinding(key.WithKeys("n", "N")),
	Toggle: key.NewBinding(key.WithKeys("left", "right", "tab", "h", "l")),
	Submit: key.NewBinding(key.WithKeys("enter")),
	Abort:  key.NewBinding(key.WithKeys("ctrl+c", "esc")),
}

// confirmModel is a yes/no prompt defaulting to no.
type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msgKey, confirmKeys.Abort):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(msgKey, confirmKeys.Submit):
		m.done = true
		return m, tea.Quit
	case key.Matches(msgKey, confirmKeys.Yes):
		m.value = true
		m.done = true
		return m, tea.Quit
	case key.Matches(msgKey, confirmKeys.No):
		m.value = false
		m.done = true
		return m, tea.Quit
	case key.Matches(msgKey, confirmKeys.Toggle):
		m.value = !m.value
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	yes := " Yes "
	no := " No "
	if m.value {
		yes = Selected.Render(yes)
	} else {
		no = Selected.Render(no)
	}
	return fmt.Sprintf("%s %s / %s\n", Bold.Render(m.title), yes, no)
}

// Confirm asks a yes/no question on the terminal. Aborting with esc or
// ctrl+c answers no.
func Confirm(title string, opts ...tea.ProgramOption) (bool, error) {
	result, err := tea.NewProgram(confirmModel{title: title}, opts...).Run()
	if err != nil {
		return false, err
	}
	m := result.(confirmModel)
	if m.aborted {
		return false, nil
	}
	return m.value, nil
}
