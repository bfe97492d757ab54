package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	idleLabel = "Analyze"
	busyLabel = "Analyzing..."
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("Transaction Risk Analysis"),
		m.renderField("Transaction ID:", m.transactionID.View(), focusTransactionID),
		m.renderField("Transaction Details:", m.details.View(), focusDetails),
		m.renderButton(),
	}

	if m.hint != "" {
		sections = append(sections, m.theme.Hint.Render(m.hint))
	}
	if m.lastError != nil {
		sections = append(sections, m.theme.StatusError.Render("Analysis failed: "+m.lastError.Error()))
	}
	if m.result != nil {
		sections = append(sections, m.renderResult())
	}

	sections = append(sections, m.theme.Help.Render(m.help.View(m.keymap)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderField(label, input string, area focusArea) string {
	labelStyle, inputStyle := m.theme.Label, m.theme.Input
	if m.focus == area {
		labelStyle, inputStyle = m.theme.FocusedLabel, m.theme.FocusedInput
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label),
		inputStyle.Render(input),
	)
}

func (m Model) renderButton() string {
	if m.SubmitDisabled() {
		return m.theme.DisabledButton.Render(m.spinner.View() + " " + busyLabel)
	}
	if m.focus == focusSubmit {
		return m.theme.FocusedButton.Render(idleLabel)
	}
	return m.theme.Button.Render(idleLabel)
}

func (m Model) renderResult() string {
	lines := []string{m.theme.PanelTitle.Render("Analysis Result")}

	for _, field := range m.result.Fields() {
		value := m.theme.FieldValue.Render(field.Value.String())
		if !field.Value.Valid {
			value = m.theme.Unavailable.Render(field.Value.String())
		}
		lines = append(lines, m.theme.FieldName.Render(field.Label+":")+" "+value)
	}

	panel := m.theme.Panel
	if m.width > 10 {
		panel = panel.Width(m.width - 4)
	}
	return panel.Render(strings.Join(lines, "\n"))
}
