// Package main provides a demo program for the TUI
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Veraticus/txrisk/internal/riskapi"
	"github.com/Veraticus/txrisk/internal/tui"
	"github.com/Veraticus/txrisk/internal/tui/themes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap := tui.NewBootstrap(
		tui.WithAnalyzer(demoAnalyzer{delay: 800 * time.Millisecond}),
		tui.WithTheme(themes.CatppuccinMocha),
		tui.WithShowErrors(true),
	)

	if err := bootstrap.Mount(ctx, tui.Host{Input: os.Stdin, Output: os.Stdout}); err != nil {
		// Use explicit error check to satisfy forbidigo
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// demoAnalyzer answers from canned data so the form can be tried without a backend.
type demoAnalyzer struct {
	delay time.Duration
}

func (d demoAnalyzer) Analyze(ctx context.Context, req riskapi.Request) (riskapi.Result, error) {
	select {
	case <-ctx.Done():
		return riskapi.Result{}, ctx.Err()
	case <-time.After(d.delay):
	}

	details := strings.ToLower(req.Details)
	if strings.Contains(details, "fail") {
		return riskapi.Result{}, &riskapi.StatusError{StatusCode: 500}
	}

	body := map[string]any{
		"Transaction_ID":      req.TransactionID,
		"Extracted_Entities":  []string{"Demo Counterparty"},
		"Entity_Type":         "Corporation",
		"Risk_Score":          0.12,
		"Supporting_Evidence": nil,
		"Confidence_Score":    0.8,
		"Reason":              "No risk indicators in the description",
	}
	if strings.Contains(details, "wire") || strings.Contains(details, "offshore") {
		body["Entity_Type"] = "Shell Company"
		body["Risk_Score"] = 0.91
		body["Supporting_Evidence"] = "Counterparty registered in a secrecy jurisdiction"
		body["Reason"] = "Large cross-border transfer to an opaque entity"
	}

	data, err := json.Marshal(body)
	if err != nil {
		return riskapi.Result{}, err
	}

	var result riskapi.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return riskapi.Result{}, err
	}
	result.Raw = data
	return result, nil
}
