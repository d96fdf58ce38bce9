package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetctl/internal/assets"
	"assetctl/internal/provider"
)

func newQuoteCmd(app *App) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "quote TICKER...",
		Short: "Fetch and print current stock prices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stocks := make([]assets.Asset, 0, len(args))
			for _, ticker := range args {
				stocks = append(stocks, app.Registry.Stock(ticker, assets.Price{}))
			}

			cache, err := app.openStore()
			if err != nil {
				return err
			}
			defer cache.Close()

			if offline {
				for _, s := range stocks {
					if err := cache.Apply(s); err != nil {
						return err
					}
				}
			} else {
				p, err := app.stockProvider()
				if err != nil {
					return err
				}
				if err := provider.UpdatePrices(cmd.Context(), p, stocks); err != nil {
					return err
				}
				for _, s := range stocks {
					if err := cache.Save(s); err != nil {
						app.Logger.Warn().Err(err).Str("asset", s.Name()).Msg("failed to cache quote")
					}
				}
			}

			for _, s := range stocks {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", s.Name(), FormatPrice(s.Price()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "use cached quotes instead of fetching")
	return cmd
}
