package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/birdhouse-planner/internal/config"
	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

func newTestWizard(t *testing.T, opts ...WizardOption) WizardModel {
	t.Helper()
	tables, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default() error: %v", err)
	}
	p, err := planner.New(tables)
	if err != nil {
		t.Fatalf("planner.New() error: %v", err)
	}
	return NewWizardModel(p, opts...)
}

func answer(t *testing.T, m WizardModel, value string) WizardModel {
	t.Helper()
	m.input.SetValue(value)
	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func press(t *testing.T, m WizardModel, msg tea.KeyMsg) WizardModel {
	t.Helper()
	next, _ := m.Update(msg)
	wm, ok := next.(WizardModel)
	if !ok {
		t.Fatalf("Update returned %T, want WizardModel", next)
	}
	return wm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWizardPlanWithoutLeagues(t *testing.T) {
	var got *planner.Plan
	m := newTestWizard(t, WithPlanHook(func(p *planner.Plan) { got = p }))

	m = answer(t, m, "388")
	if m.step != stepTarget {
		t.Fatalf("step = %d, want target", m.step)
	}
	m = answer(t, m, "30")
	m = answer(t, m, "n")

	if m.step != stepPlan {
		t.Fatalf("step = %d, want plan", m.step)
	}
	if m.Plan() == nil || got != m.Plan() {
		t.Fatal("plan hook not called with the computed plan")
	}
	if len(m.Plan().Steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(m.Plan().Steps))
	}
	if m.Plan().Multiplier != 1 {
		t.Errorf("multiplier = %v, want 1", m.Plan().Multiplier)
	}

	view := m.View()
	for _, want := range []string{"Starting from 388xp", "Regular logs", "Oak logs", "Willow logs", "14,388"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWizardLeaguesRelicTier(t *testing.T) {
	var errs []error
	m := newTestWizard(t, WithErrorHook(func(err error) { errs = append(errs, err) }))

	m = answer(t, m, "388")
	m = answer(t, m, "30")
	m = answer(t, m, "1")
	if m.step != stepRelicTier {
		t.Fatalf("step = %d, want relic tier", m.step)
	}

	m = answer(t, m, "9")
	if m.step != stepRelicTier {
		t.Fatalf("out of range tier advanced to step %d", m.step)
	}
	if m.errMsg != "Please enter an integer between 1 and 7." {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if len(errs) != 1 || !errors.Is(errs[0], planner.ErrMultiplierOutOfRange) {
		t.Errorf("error hook got %v", errs)
	}

	m = answer(t, m, "1")
	if m.step != stepPlan {
		t.Fatalf("step = %d, want plan", m.step)
	}
	if m.Plan().Multiplier != 5 {
		t.Errorf("multiplier = %v, want 5", m.Plan().Multiplier)
	}
	if len(m.Plan().Steps) != 2 {
		t.Errorf("got %d steps, want 2", len(m.Plan().Steps))
	}
	if !strings.Contains(m.View(), "Your XP modifier is 5") {
		t.Error("view missing modifier notice")
	}
}

func TestWizardRejectsAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		step    wizardStep
		errMsg  string
		err     error
	}{
		{"not a number", []string{"abc"}, stepExperience, "Sorry, try entering a whole number.", planner.ErrInvalidNumber},
		{"below minimum", []string{"100"}, stepExperience, "You need at least 5 Hunter to make a birdhouse.", planner.ErrBelowMinimumExperience},
		{"target passed", []string{"1154", "10"}, stepTarget, "You've already passed your target.", planner.ErrTargetAlreadyReached},
		{"unknown level", []string{"1154", "120"}, stepTarget, "Level 120 is not in the level table.", planner.ErrUnknownLevel},
		{"target not a number", []string{"1154", "ten"}, stepTarget, "Sorry, try entering a whole number.", planner.ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last error
			m := newTestWizard(t, WithErrorHook(func(err error) { last = err }))
			for _, a := range tt.answers {
				m = answer(t, m, a)
			}
			if m.step != tt.step {
				t.Errorf("step = %d, want %d", m.step, tt.step)
			}
			if m.errMsg != tt.errMsg {
				t.Errorf("errMsg = %q, want %q", m.errMsg, tt.errMsg)
			}
			if !errors.Is(last, tt.err) {
				t.Errorf("error hook got %v, want %v", last, tt.err)
			}
			if m.input.Value() != "" {
				t.Errorf("input not cleared: %q", m.input.Value())
			}
			if !strings.Contains(m.View(), tt.errMsg) {
				t.Error("error message not rendered")
			}
		})
	}
}

func TestWizardRetryAfterError(t *testing.T) {
	m := newTestWizard(t)

	m = answer(t, m, "lots")
	m = answer(t, m, "1154")
	if m.step != stepTarget {
		t.Fatalf("step = %d, want target", m.step)
	}
	if m.errMsg != "" {
		t.Errorf("stale errMsg %q", m.errMsg)
	}
	if m.req.CurrentXP != 1154 {
		t.Errorf("CurrentXP = %d, want 1154", m.req.CurrentXP)
	}
}

func TestWizardBackAndRestart(t *testing.T) {
	m := newTestWizard(t)

	m = answer(t, m, "388")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.step != stepExperience {
		t.Fatalf("esc: step = %d, want experience", m.step)
	}

	m = answer(t, m, "388")
	m = answer(t, m, "20")
	m = answer(t, m, "")
	if m.step != stepPlan {
		t.Fatalf("step = %d, want plan", m.step)
	}

	m = press(t, m, runes("r"))
	if m.step != stepExperience {
		t.Errorf("restart: step = %d, want experience", m.step)
	}
	if m.Plan() != nil {
		t.Error("restart kept the old plan")
	}
	if m.req != (planner.Request{}) {
		t.Errorf("restart kept request %+v", m.req)
	}
}

func TestWizardQuit(t *testing.T) {
	m := newTestWizard(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
	if !next.(WizardModel).IsQuitting() {
		t.Error("IsQuitting() = false after ctrl+c")
	}
	if next.View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestWizardCloseFromPlan(t *testing.T) {
	m := newTestWizard(t)
	m = answer(t, m, "388")
	m = answer(t, m, "10")
	m = answer(t, m, "no")

	// q types into the input on question screens but closes the plan screen.
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q on plan screen returned no command")
	}
	if !next.(WizardModel).IsQuitting() {
		t.Error("q did not close the plan screen")
	}
}

func TestWizardWindowResize(t *testing.T) {
	m := newTestWizard(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	wm := next.(WizardModel)
	if wm.width != 120 || wm.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", wm.width, wm.height)
	}
}
