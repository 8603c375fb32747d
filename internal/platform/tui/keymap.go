package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// WizardKeyMap defines the key bindings for the planner wizard.
type WizardKeyMap struct {
	Submit  key.Binding
	Back    key.Binding
	Restart key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
	// Close quits from the plan screen, where typing is not expected.
	Close key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Back},
		{k.Up, k.Down, k.Restart},
		{k.Close, k.Quit},
	}
}

// PlanHelp is the short help shown under a finished plan.
func (k WizardKeyMap) PlanHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Restart, k.Close}
}

// DefaultWizardKeyMap returns default key bindings.
func DefaultWizardKeyMap() WizardKeyMap {
	return WizardKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new plan"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Close: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "done"),
		),
	}
}
