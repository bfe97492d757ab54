package tui

import (
	"errors"

	"github.com/Veraticus/txrisk/internal/riskapi"
	tea "github.com/charmbracelet/bubbletea"
)

var errNoAnalyzer = errors.New("no analyzer configured")

// analyze issues the request off the UI goroutine. No timeout is applied here;
// the request lives as long as the program context.
func (m Model) analyze(req riskapi.Request) tea.Cmd {
	analyzer := m.analyzer
	ctx := m.ctx

	return func() tea.Msg {
		if analyzer == nil {
			return analysisDoneMsg{request: req, err: errNoAnalyzer}
		}

		result, err := analyzer.Analyze(ctx, req)
		return analysisDoneMsg{
			request: req,
			result:  result,
			err:     err,
		}
	}
}
