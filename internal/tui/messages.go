package tui

import "github.com/Veraticus/txrisk/internal/riskapi"

// analysisDoneMsg carries the outcome of one submission back to Update.
type analysisDoneMsg struct {
	err     error
	request riskapi.Request
	result  riskapi.Result
}
