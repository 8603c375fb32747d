package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/birdhouse-planner/internal/planner"
)

// wizardStep is the question currently on screen.
type wizardStep int

const (
	stepExperience wizardStep = iota
	stepTarget
	stepLeagues
	stepRelicTier
	stepPlan
)

// WizardOption configures a WizardModel.
type WizardOption func(*WizardModel)

// WithPlanHook is called once for every plan the wizard computes.
func WithPlanHook(fn func(*planner.Plan)) WizardOption {
	return func(m *WizardModel) { m.onPlan = fn }
}

// WithErrorHook is called for every rejected answer.
func WithErrorHook(fn func(error)) WizardOption {
	return func(m *WizardModel) { m.onError = fn }
}

// WithSize sets the initial screen size.
func WithSize(width, height int) WizardOption {
	return func(m *WizardModel) {
		m.width = width
		m.height = height
	}
}

// WizardModel is the Bubble Tea model that asks for the planning inputs
// and shows the resulting plan as a table.
type WizardModel struct {
	planner  *planner.Planner
	theme    Theme
	keys     WizardKeyMap
	help     help.Model
	input    textinput.Model
	table    table.Model
	printer  *message.Printer
	step     wizardStep
	req      planner.Request
	plan     *planner.Plan
	errMsg   string
	width    int
	height   int
	quitting bool
	onPlan   func(*planner.Plan)
	onError  func(error)
}

// NewWizardModel creates a wizard positioned on the first question.
func NewWizardModel(p *planner.Planner, opts ...WizardOption) WizardModel {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 20
	ti.Focus()

	h := help.New()
	h.ShowAll = false

	m := WizardModel{
		planner: p,
		theme:   DefaultTheme(),
		keys:    DefaultWizardKeyMap(),
		help:    h,
		input:   ti,
		printer: message.NewPrinter(language.English),
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.setPlaceholder()
	return m
}

// Init initializes the wizard.
func (m WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the wizard.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.step == stepPlan {
			return m.handlePlanKey(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Back):
			m.goBack()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.plan != nil {
			m.table = m.buildTable()
		}
		return m, nil
	}

	if m.step == stepPlan {
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePlanKey processes keys on the plan screen.
func (m WizardModel) handlePlanKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.reset()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// submit validates the current answer and moves to the next question.
// Invalid answers keep the question on screen with an error message.
func (m WizardModel) submit() (tea.Model, tea.Cmd) {
	answer := strings.TrimSpace(m.input.Value())
	m.errMsg = ""

	switch m.step {
	case stepExperience:
		xp, err := planner.ParseWholeNumber(answer)
		if err != nil {
			return m.reject(err, "Sorry, try entering a whole number.")
		}
		if xp < m.planner.MinimumExperience() {
			return m.reject(planner.ErrBelowMinimumExperience,
				fmt.Sprintf("You need at least %d Hunter to make a birdhouse.", m.planner.MinimumLevel()))
		}
		m.req.CurrentXP = xp
		m.advance(stepTarget)

	case stepTarget:
		target, err := planner.ParseWholeNumber(answer)
		if err != nil {
			return m.reject(err, "Sorry, try entering a whole number.")
		}
		req := m.req
		req.TargetLevel = target
		if err := m.planner.Validate(req); err != nil {
			msg := err.Error()
			switch {
			case errors.Is(err, planner.ErrTargetAlreadyReached):
				msg = "You've already passed your target."
			case errors.Is(err, planner.ErrUnknownLevel):
				msg = fmt.Sprintf("Level %d is not in the level table.", target)
			}
			return m.reject(err, msg)
		}
		m.req = req
		m.advance(stepLeagues)

	case stepLeagues:
		switch strings.ToLower(answer) {
		case "1", "y", "yes":
			m.advance(stepRelicTier)
		default:
			m.req.MultiplierTier = 0
			return m.finish()
		}

	case stepRelicTier:
		lo, hi := m.planner.Tables().Multipliers.Range()
		tier, err := planner.ParseWholeNumber(answer)
		if err == nil && tier == 0 {
			err = planner.ErrMultiplierOutOfRange
		}
		if err == nil {
			_, err = m.planner.Multiplier(tier)
		}
		if err != nil {
			return m.reject(err, fmt.Sprintf("Please enter an integer between %d and %d.", lo, hi))
		}
		m.req.MultiplierTier = tier
		return m.finish()
	}

	return m, nil
}

// finish runs the planner and switches to the plan screen.
func (m WizardModel) finish() (tea.Model, tea.Cmd) {
	plan, err := m.planner.Plan(m.req)
	if err != nil {
		return m.reject(err, err.Error())
	}
	m.plan = plan
	m.step = stepPlan
	m.input.Blur()
	m.table = m.buildTable()
	if m.onPlan != nil {
		m.onPlan(plan)
	}
	return m, nil
}

func (m WizardModel) reject(err error, msg string) (tea.Model, tea.Cmd) {
	m.errMsg = msg
	m.input.SetValue("")
	if m.onError != nil {
		m.onError(err)
	}
	return m, nil
}

func (m *WizardModel) advance(step wizardStep) {
	m.step = step
	m.input.SetValue("")
	m.setPlaceholder()
}

func (m *WizardModel) goBack() {
	m.errMsg = ""
	switch m.step {
	case stepTarget:
		m.advance(stepExperience)
	case stepLeagues:
		m.advance(stepTarget)
	case stepRelicTier:
		m.advance(stepLeagues)
	}
}

func (m *WizardModel) reset() {
	m.req = planner.Request{}
	m.plan = nil
	m.errMsg = ""
	m.input.Focus()
	m.advance(stepExperience)
}

func (m *WizardModel) setPlaceholder() {
	switch m.step {
	case stepExperience:
		m.input.Placeholder = "2224614"
	case stepTarget:
		m.input.Placeholder = "99"
	case stepLeagues:
		m.input.Placeholder = "y/N"
	case stepRelicTier:
		lo, hi := m.planner.Tables().Multipliers.Range()
		m.input.Placeholder = fmt.Sprintf("%d-%d", lo, hi)
	}
}

// buildTable creates the plan table sized to the window.
func (m WizardModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "Tier", Width: 20},
		{Title: "Logs", Width: 16},
		{Title: "Qty", Width: 8},
		{Title: "Trips", Width: 7},
		{Title: "XP after", Width: 14},
	}

	rows := make([]table.Row, 0, len(m.plan.Steps))
	for _, s := range m.plan.Steps {
		rows = append(rows, table.Row{
			planner.TierLabel(s.Tier),
			s.Material,
			m.printer.Sprintf("%d", s.Quantity),
			m.printer.Sprintf("%d", s.Trips),
			m.printer.Sprintf("%d", int(math.Round(s.EndXP))),
		})
	}

	// Header plus its bottom border take two lines.
	height := len(rows) + 3
	if limit := m.height - 12; limit > 3 && height > limit {
		height = limit
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	t.SetStyles(m.theme.TableStyles())
	return t
}

// View renders the wizard.
func (m WizardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("BIRDHOUSE PLANNER"))
	b.WriteString("\n")

	if m.step == stepPlan {
		b.WriteString(m.viewPlan())
		b.WriteString("\n")
		b.WriteString(m.theme.Help.Render(m.help.ShortHelpView(m.keys.PlanHelp())))
		return b.String()
	}

	b.WriteString(m.viewAnswers())
	b.WriteString(m.theme.Prompt.Render(m.question()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(m.theme.Error.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m WizardModel) question() string {
	switch m.step {
	case stepExperience:
		return "What is your current Hunter xp?"
	case stepTarget:
		return "What is your target Hunter level?"
	case stepLeagues:
		return "Is this Leagues?"
	case stepRelicTier:
		lo, hi := m.planner.Tables().Multipliers.Range()
		return fmt.Sprintf("What tier have you unlocked? (%d-%d)", lo, hi)
	}
	return ""
}

// viewAnswers lists the answers given so far.
func (m WizardModel) viewAnswers() string {
	var b strings.Builder
	if m.step > stepExperience {
		b.WriteString(m.theme.Answer.Render(m.printer.Sprintf("Current xp:   %d", m.req.CurrentXP)))
		b.WriteString("\n")
	}
	if m.step > stepTarget {
		b.WriteString(m.theme.Answer.Render(fmt.Sprintf("Target level: %d", m.req.TargetLevel)))
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (m WizardModel) viewPlan() string {
	var b strings.Builder

	header := m.printer.Sprintf("Starting from %dxp, you will need:", m.plan.StartXP)
	b.WriteString(m.theme.Subtitle.Render(header))
	b.WriteString("\n")
	if m.plan.Multiplier != 1 {
		b.WriteString(m.theme.Notice.Render(fmt.Sprintf("Your XP modifier is %v", m.plan.Multiplier)))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Panel.Render(m.table.View()))
	b.WriteString("\n")

	total := m.printer.Sprintf("%d logs over %d trips, ending at %d xp (level %d)",
		m.plan.TotalLogs(), m.plan.TotalTrips(), int(math.Round(m.plan.FinalXP)), m.plan.FinalLevel)
	b.WriteString(m.theme.Total.Render(total))
	b.WriteString("\n")
	return b.String()
}

// Plan returns the computed plan, or nil if the wizard ended early.
func (m WizardModel) Plan() *planner.Plan {
	return m.plan
}

// IsQuitting returns true if the user closed the wizard.
func (m WizardModel) IsQuitting() bool {
	return m.quitting
}

// RunWizard runs the wizard in the terminal and returns the last plan shown.
func RunWizard(p *planner.Planner, opts ...WizardOption) (*planner.Plan, error) {
	model := NewWizardModel(p, opts...)

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := prog.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(WizardModel)
	if !ok {
		return nil, nil
	}
	return m.Plan(), nil
}
