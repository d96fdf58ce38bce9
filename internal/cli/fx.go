package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetctl/internal/assets"
	"assetctl/internal/provider"
)

func newFxCmd(app *App) *cobra.Command {
	var prev bool

	cmd := &cobra.Command{
		Use:   "fx CODE...",
		Short: "Fetch and print USD exchange rates for currencies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			currencies := make([]assets.Asset, 0, len(args))
			for _, code := range args {
				var rate assets.Price
				if assets.CurrencyName(code) == "USD" {
					rate = assets.NewPrice(1)
				}
				c, err := app.Registry.Currency(code, rate)
				if err != nil {
					return err
				}
				currencies = append(currencies, c)
			}

			p := app.currencyProvider()
			for _, c := range currencies {
				// USD is the quote currency itself; its rate is fixed at 1.
				if c.Name() == "USD" {
					fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", c.Name(), FormatPrice(c.Price()))
					continue
				}
				if err := provider.UpdatePrice(cmd.Context(), p, c); err != nil {
					return err
				}
				line := fmt.Sprintf("%-6s %s", c.Name(), FormatPrice(c.Price()))
				if prev {
					prevClose, err := p.GetPreviousClose(cmd.Context(), c)
					if err != nil {
						return err
					}
					change := (c.Price().Value - prevClose) / prevClose * 100
					line += fmt.Sprintf("  prev %.4f  %s", prevClose, FormatPercent(change))
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prev, "prev", false, "also show previous close and change")
	return cmd
}
