package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/txrisk/internal/common"
	"github.com/Veraticus/txrisk/internal/riskapi"
	"github.com/Veraticus/txrisk/internal/tui/themes"
	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys like api.url onto TXRISK_API_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

// newAnalyzer builds the backend client from configuration.
func newAnalyzer() (*riskapi.Client, error) {
	client, err := riskapi.NewClient(riskapi.Config{
		BaseURL: viper.GetString("api.url"),
		Token:   viper.GetString("api.token"),
		Timeout: viper.GetDuration("api.timeout"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return client, nil
}

// selectedTheme resolves ui.theme, falling back to the default theme.
func selectedTheme() themes.Theme {
	return themes.GetTheme(viper.GetString("ui.theme"))
}
