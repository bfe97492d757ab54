package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/txrisk/internal/cli"
	"github.com/Veraticus/txrisk/internal/common"
	"github.com/Veraticus/txrisk/internal/model"
	"github.com/Veraticus/txrisk/internal/ofx"
	"github.com/Veraticus/txrisk/internal/riskapi"
	"github.com/spf13/cobra"
)

const (
	outputPanel = "panel"
	outputJSON  = "json"
)

// spinnerInterval is how often the single-request spinner advances.
const spinnerInterval = 100 * time.Millisecond

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a transaction without the interactive form",
		Long: `Submit a transaction to the risk analysis service and print the result.

Examples:
  # Analyze a single transaction
  txrisk analyze --id TX123 --details "wire transfer \$10,000 to Acme Holdings"

  # Print the service response untouched
  txrisk analyze --id TX123 --details "..." --output json

  # Analyze every transaction in a bank statement
  txrisk analyze --ofx ~/Downloads/statement.qfx`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().String("id", "", "Transaction ID")
	cmd.Flags().String("details", "", "Transaction details")
	cmd.Flags().StringP("output", "o", outputPanel, "Output format (panel, json)")
	cmd.Flags().String("ofx", "", "Analyze every transaction in an OFX/QFX statement")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	id, _ := cmd.Flags().GetString("id")
	details, _ := cmd.Flags().GetString("details")
	output, _ := cmd.Flags().GetString("output")
	ofxPath, _ := cmd.Flags().GetString("ofx")

	if output != outputPanel && output != outputJSON {
		return fmt.Errorf("%w: unknown output format %q", common.ErrInvalidConfig, output)
	}

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	if ofxPath == "" {
		switch {
		case id == "":
			return common.NewUserError("--id is required", common.MissingFieldError("transaction ID"))
		case details == "":
			return common.NewUserError("--details is required", common.MissingFieldError("transaction details"))
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	ctx = cli.NewInterruptHandler(cmd.ErrOrStderr()).HandleInterrupts(ctx, ofxPath != "")

	if ofxPath != "" {
		return analyzeStatement(ctx, analyzer, ofxPath, output, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	result, err := analyzeOne(ctx, analyzer, riskapi.Request{TransactionID: id, Details: details}, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrAnalysisFailed, err)
	}

	return printResult(cmd.OutOrStdout(), result, output)
}

// analyzeOne submits a single request while a spinner runs on w.
func analyzeOne(ctx context.Context, analyzer riskapi.Analyzer, req riskapi.Request, w io.Writer) (riskapi.Result, error) {
	spinner := cli.NewSpinner(w, "Analyzing "+req.TransactionID+"...")

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = spinner.Add(1)
			}
		}
	}()

	result, err := analyzer.Analyze(ctx, req)
	close(done)
	<-stopped
	_ = spinner.Finish()

	return result, err
}

func printResult(w io.Writer, result riskapi.Result, output string) error {
	if output == outputJSON {
		_, err := fmt.Fprintln(w, string(result.Raw))
		return err
	}
	_, err := fmt.Fprintln(w, cli.RenderResult(result))
	return err
}

// analyzeStatement submits every transaction in an OFX file, one at a time.
// Individual failures are logged and counted; only a run where nothing
// succeeded is an error.
func analyzeStatement(ctx context.Context, analyzer riskapi.Analyzer, path, output string, out, progress io.Writer) error {
	transactions, err := readStatement(ctx, path)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("No transactions found in "+filepath.Base(path)))
		return nil
	}

	common.LogInfo("Analyzing statement", common.Fields{
		"file":         filepath.Base(path),
		"transactions": len(transactions),
	})

	bar := cli.NewProgressBar(progress, len(transactions), "Analyzing transactions...")

	analyzed, failed := 0, 0
	for _, tx := range transactions {
		if ctx.Err() != nil {
			break
		}

		req := riskapi.Request{TransactionID: tx.ID, Details: tx.Details()}
		result, err := analyzer.Analyze(ctx, req)
		_ = bar.Add(1)

		if err != nil {
			failed++
			common.LogError(err, "Error fetching analysis", common.Fields{
				"transaction_id": tx.ID,
				"account_id":     tx.AccountID,
			})
			continue
		}

		analyzed++
		if output == outputJSON {
			fmt.Fprintln(out, string(result.Raw))
		} else {
			fmt.Fprintln(out, cli.FormatBatchLine(result))
		}
	}

	fmt.Fprintln(out, cli.FormatSummary(analyzed, failed))

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if analyzed == 0 && failed > 0 {
		return fmt.Errorf("%w: all %d requests failed", common.ErrAnalysisFailed, failed)
	}
	return nil
}

func readStatement(ctx context.Context, path string) ([]model.Transaction, error) {
	f, err := os.Open(filepath.Clean(path)) // #nosec G304 -- user-provided statement path
	if err != nil {
		return nil, common.NewUserError("could not open statement", err)
	}
	defer func() { _ = f.Close() }()

	transactions, err := ofx.NewParser().ParseFile(ctx, f)
	if err != nil {
		return nil, common.NewUserError("could not parse statement "+filepath.Base(path), err)
	}
	return transactions, nil
}
