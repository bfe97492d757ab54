// Package tui implements the interactive transaction risk form.
package tui

import (
	"context"

	"github.com/Veraticus/txrisk/internal/common"
	"github.com/Veraticus/txrisk/internal/riskapi"
	"github.com/Veraticus/txrisk/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// requiredHint mirrors what a browser says about an empty required field.
const requiredHint = "Please fill out this field."

// focusArea identifies the control that receives key presses.
type focusArea int

const (
	focusTransactionID focusArea = iota
	focusDetails
	focusSubmit
	focusCount
)

// Model is the form's view controller. Update is the only place its state changes.
type Model struct {
	ctx           context.Context
	analyzer      riskapi.Analyzer
	lastError     error
	result        *riskapi.Result
	theme         themes.Theme
	keymap        KeyMap
	help          help.Model
	hint          string
	config        Config
	transactionID textinput.Model
	spinner       spinner.Model
	details       textarea.Model
	focus         focusArea
	width         int
	height        int
	loading       bool
	quitting      bool
}

// NewModel creates a form with empty fields and no result.
func NewModel(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

func newModel(cfg Config) Model {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	idInput := textinput.New()
	idInput.Placeholder = "e.g. TX123"
	idInput.Prompt = ""
	idInput.CharLimit = 0
	idInput.Focus()

	detailsInput := textarea.New()
	detailsInput.Placeholder = "Describe the transaction..."
	detailsInput.ShowLineNumbers = false
	detailsInput.Prompt = ""
	detailsInput.CharLimit = 0
	detailsInput.SetHeight(4)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:           ctx,
		analyzer:      cfg.Analyzer,
		theme:         cfg.Theme,
		keymap:        DefaultKeyMap(),
		help:          help.New(),
		config:        cfg,
		transactionID: idInput,
		details:       detailsInput,
		spinner:       s,
		focus:         focusTransactionID,
		width:         cfg.Width,
		height:        cfg.Height,
	}
	m.handleResize()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case analysisDoneMsg:
		m.handleAnalysisDone(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Submit):
			return m, m.submit()
		case key.Matches(msg, m.keymap.NextField):
			return m, m.setFocus((m.focus + 1) % focusCount)
		case key.Matches(msg, m.keymap.PrevField):
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
		}

		switch m.focus {
		case focusSubmit:
			if key.Matches(msg, m.keymap.Activate) {
				return m, m.submit()
			}
			return m, nil
		case focusTransactionID:
			// Enter in a single-line field submits the whole form.
			if msg.Type == tea.KeyEnter {
				return m, m.submit()
			}
		}

		m.hint = ""
		return m, m.updateFocusedField(msg)
	}

	// Cursor blinks and other input-internal messages.
	var idCmd, detailsCmd tea.Cmd
	m.transactionID, idCmd = m.transactionID.Update(msg)
	m.details, detailsCmd = m.details.Update(msg)
	return m, tea.Batch(idCmd, detailsCmd)
}

// updateFocusedField forwards a key press to whichever field has focus.
func (m *Model) updateFocusedField(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTransactionID:
		m.transactionID, cmd = m.transactionID.Update(msg)
	case focusDetails:
		m.details, cmd = m.details.Update(msg)
	}
	return cmd
}

// submit starts an analysis when the form is complete and idle.
func (m *Model) submit() tea.Cmd {
	if m.loading {
		return nil
	}

	req := riskapi.Request{
		TransactionID: m.transactionID.Value(),
		Details:       m.details.Value(),
	}

	switch {
	case req.TransactionID == "":
		m.hint = requiredHint
		return m.setFocus(focusTransactionID)
	case req.Details == "":
		m.hint = requiredHint
		return m.setFocus(focusDetails)
	}

	m.hint = ""
	m.lastError = nil
	m.loading = true

	common.LogDebug("Submitting transaction for analysis", common.Fields{
		"transaction_id": req.TransactionID,
		"details_length": len(req.Details),
	})

	return tea.Batch(m.spinner.Tick, m.analyze(req))
}

// handleAnalysisDone stores a successful result or reports the failure.
// Either way the in-flight flag is cleared.
func (m *Model) handleAnalysisDone(msg analysisDoneMsg) {
	m.loading = false

	if msg.err != nil {
		common.LogError(msg.err, "Error fetching analysis", common.Fields{
			"transaction_id": msg.request.TransactionID,
		})
		if m.config.ShowErrors {
			m.lastError = msg.err
		}
		return
	}

	result := msg.result
	m.result = &result
	m.lastError = nil

	common.LogInfo("Transaction analyzed", common.Fields{
		"transaction_id": msg.request.TransactionID,
		"risk_score":     result.RiskScore.String(),
	})
}

// setFocus moves focus to the given control.
func (m *Model) setFocus(target focusArea) tea.Cmd {
	m.focus = target
	m.transactionID.Blur()
	m.details.Blur()

	switch target {
	case focusTransactionID:
		return m.transactionID.Focus()
	case focusDetails:
		return m.details.Focus()
	default:
		return nil
	}
}

// handleResize adjusts input widths to the terminal.
func (m *Model) handleResize() {
	inner := m.width - 6
	if inner < 20 {
		inner = 20
	}
	m.transactionID.Width = inner
	m.details.SetWidth(inner)
	m.help.Width = m.width
}

// TransactionID returns the current transaction id text.
func (m Model) TransactionID() string {
	return m.transactionID.Value()
}

// Details returns the current details text.
func (m Model) Details() string {
	return m.details.Value()
}

// Loading reports whether a request is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// SubmitDisabled reports whether the Analyze button is disabled.
func (m Model) SubmitDisabled() bool {
	return m.loading
}

// Result returns the most recent successful result, if any.
func (m Model) Result() (riskapi.Result, bool) {
	if m.result == nil {
		return riskapi.Result{}, false
	}
	return *m.result, true
}

// LastError returns the error shown under the button, if visible errors are enabled.
func (m Model) LastError() error {
	return m.lastError
}
