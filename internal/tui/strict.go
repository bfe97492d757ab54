package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// strictModel wraps the form with development checks. Every update is
// recorded, and each view is rendered twice; a mismatch means View depends on
// something other than the model.
type strictModel struct {
	recorder *Recorder
	inner    Model
}

func newStrictModel(inner Model, recorder *Recorder) strictModel {
	return strictModel{inner: inner, recorder: recorder}
}

func (s strictModel) Init() tea.Cmd {
	return s.inner.Init()
}

func (s strictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.inner.Update(msg)
	s.inner = next.(Model)

	first, second := s.inner.View(), s.inner.View()
	if first != second {
		slog.Warn("Form rendered differently from identical state", "message_type", typeName(msg))
		s.recorder.Log("Impure render after %s", typeName(msg))
	}
	s.recorder.RecordState(s.inner, msg, first)

	return s, cmd
}

func (s strictModel) View() string {
	return s.inner.View()
}

func typeName(msg tea.Msg) string {
	if msg == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", msg)
}
