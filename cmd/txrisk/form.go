package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/txrisk/internal/common"
	"github.com/Veraticus/txrisk/internal/config"
	"github.com/Veraticus/txrisk/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func formCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Open the interactive analysis form",
		Long: `Open the transaction risk analysis form in the terminal.

Fill in the transaction ID and details, then press ctrl+s (or enter on the
Analyze button) to submit. Diagnostics are written to the log file while the
form owns the terminal.`,
		Args: cobra.NoArgs,
		RunE: runForm,
	}

	cmd.Flags().Bool("show-errors", false, "Show failed analyses under the button")
	cmd.Flags().Bool("strict", false, "Record every update and check views for impure rendering")
	cmd.Flags().String("theme", "", "Color theme (default, catppuccin-mocha)")
	cmd.Flags().String("log-file", "", "Diagnostic log file while the form runs")

	_ = viper.BindPFlag("ui.show_errors", cmd.Flags().Lookup("show-errors"))
	_ = viper.BindPFlag("ui.strict", cmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("logging.file", cmd.Flags().Lookup("log-file"))

	return cmd
}

func runForm(cmd *cobra.Command, _ []string) error {
	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	bootstrap := tui.NewBootstrap(
		tui.WithAnalyzer(analyzer),
		tui.WithTheme(selectedTheme()),
		tui.WithShowErrors(viper.GetBool("ui.show_errors")),
		tui.WithStrictMode(viper.GetBool("ui.strict")),
	)

	host := tui.Host{Input: cmd.InOrStdin(), Output: cmd.OutOrStdout()}

	if logPath := viper.GetString("logging.file"); logPath != "" {
		logFile, err := config.OpenLogFile(logPath)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			_ = setupLogging(nil)
			_ = logFile.Close()
		}()
		if err := setupLogging(logFile); err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
	}

	common.LogInfo("Mounting analysis form", common.Fields{"endpoint": analyzer.Endpoint()})

	if err := bootstrap.Mount(cmd.Context(), host); err != nil {
		if errors.Is(err, tui.ErrNoMountPoint) {
			return common.NewUserError(
				"The form needs an interactive terminal. Use 'txrisk analyze --id ID --details TEXT' instead.",
				err,
			)
		}
		return err
	}

	return nil
}
