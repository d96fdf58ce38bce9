// Package cli provides the command-line interface for assetctl.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"assetctl/internal/assets"
	"assetctl/internal/config"
	"assetctl/internal/provider"
	"assetctl/internal/store"
	"assetctl/pkg/utils"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Registry *assets.Registry
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: assets.NewRegistry(),
	}

	rootCmd := &cobra.Command{
		Use:           "assetctl",
		Short:         "Inspect instruments, expirations, payoffs, and market prices",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	rootCmd.AddCommand(
		newQuoteCmd(app),
		newFxCmd(app),
		newPayoffCmd(app),
		newExpiryCmd(app),
	)
	return rootCmd
}

func (a *App) yahooConfig() provider.YahooConfig {
	return provider.YahooConfig{
		BaseURL: a.Config.Provider.Yahoo.BaseURL,
		Timeout: a.Config.Provider.Yahoo.Timeout,
		Retry: utils.RetryConfig{
			MaxAttempts:   a.Config.Provider.Yahoo.MaxAttempts,
			InitialDelay:  utils.DefaultRetryConfig().InitialDelay,
			MaxDelay:      utils.DefaultRetryConfig().MaxDelay,
			BackoffFactor: utils.DefaultRetryConfig().BackoffFactor,
		},
		Logger: a.Logger,
	}
}

// stockProvider builds the configured stock price provider.
func (a *App) stockProvider() (provider.Provider, error) {
	switch a.Config.Provider.Source {
	case "kite":
		return provider.NewKiteProvider(provider.KiteConfig{
			APIKey:      a.Config.Provider.Kite.APIKey,
			AccessToken: a.Config.Provider.Kite.AccessToken,
			Exchange:    a.Config.Provider.Kite.Exchange,
		}), nil
	case "yahoo":
		return provider.NewYahooStockProvider(a.yahooConfig()), nil
	}
	return nil, fmt.Errorf("unknown provider source: %s", a.Config.Provider.Source)
}

// currencyProvider builds the currency rate provider. Kite serves equities
// only, so currencies always go through Yahoo.
func (a *App) currencyProvider() provider.Provider {
	return provider.NewYahooCurrencyProvider(a.yahooConfig())
}

// openStore opens the local quote cache and prunes stale entries.
func (a *App) openStore() (*store.QuoteStore, error) {
	s, err := store.NewQuoteStore(a.Config.Store.Path)
	if err != nil {
		return nil, err
	}
	if a.Config.Store.MaxAge > 0 {
		if n, err := s.Prune(a.Config.Store.MaxAge); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to prune quote cache")
		} else if n > 0 {
			a.Logger.Debug().Int64("removed", n).Msg("pruned stale quotes")
		}
	}
	return s, nil
}
