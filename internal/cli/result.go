package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/txrisk/internal/riskapi"
)

// RenderResult renders an analysis in the same labelled order as the form.
func RenderResult(result riskapi.Result) string {
	lines := make([]string, 0, 7)
	for _, field := range result.Fields() {
		value := field.Value.String()
		if !field.Value.Valid {
			value = SubtleStyle.Render(value)
		}
		lines = append(lines, BoldStyle.Render(field.Label+":")+" "+value)
	}
	return RenderBox("Analysis Result", strings.Join(lines, "\n"))
}

// FormatSummary reports how a batch run went.
func FormatSummary(analyzed, failed int) string {
	msg := fmt.Sprintf("Analyzed %d transaction(s), %d failed", analyzed, failed)
	switch {
	case analyzed == 0 && failed > 0:
		return FormatError(msg)
	case failed > 0:
		return FormatWarning(msg)
	default:
		return FormatSuccess(msg)
	}
}

// FormatBatchLine summarizes one analyzed transaction on a single line.
func FormatBatchLine(result riskapi.Result) string {
	return fmt.Sprintf("%s  risk=%s  confidence=%s  %s",
		BoldStyle.Render(result.TransactionID.String()),
		result.RiskScore.String(),
		result.ConfidenceScore.String(),
		SubtleStyle.Render(result.Reason.String()),
	)
}
