package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetctl/internal/assets"
)

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Print derivative payoffs at expiration for hypothetical spot prices",
	}
	cmd.AddCommand(newPayoffOptionCmd(app), newPayoffFuturesCmd(app))
	return cmd
}

func newPayoffOptionCmd(app *App) *cobra.Command {
	var (
		underlying string
		strike     float64
		expiration string
		optType    string
		multiplier float64
		spots      []float64
	)

	cmd := &cobra.Command{
		Use:   "option",
		Short: "Option payoff across spot prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := app.Registry.Option(assets.OptionSpec{
				Underlying: app.Registry.Stock(underlying, assets.Price{}),
				Strike:     strike,
				Expiration: expiration,
				Type:       optType,
				Multiplier: multiplier,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  strike %.2f  x%.0f\n", opt.Name(), opt.Strike(), opt.Multiplier())
			for _, spot := range spots {
				fmt.Fprintf(cmd.OutOrStdout(), "  spot %10.2f  payoff %s\n", spot, FormatSigned(opt.PriceAtExpiration(spot)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&underlying, "underlying", "", "underlying ticker")
	cmd.Flags().Float64Var(&strike, "strike", 0, "strike price")
	cmd.Flags().StringVar(&expiration, "expiration", "", "expiration date (YYMMDD)")
	cmd.Flags().StringVar(&optType, "type", "C", "option type: call or put")
	cmd.Flags().Float64Var(&multiplier, "multiplier", 0, "contract multiplier (default 100)")
	cmd.Flags().Float64SliceVar(&spots, "spot", nil, "spot prices to evaluate")
	_ = cmd.MarkFlagRequired("underlying")
	_ = cmd.MarkFlagRequired("strike")
	_ = cmd.MarkFlagRequired("expiration")
	_ = cmd.MarkFlagRequired("spot")
	return cmd
}

func newPayoffFuturesCmd(app *App) *cobra.Command {
	var (
		underlying   string
		expiration   string
		forwardPrice float64
		contractSize float64
		spots        []float64
	)

	cmd := &cobra.Command{
		Use:   "futures",
		Short: "Futures settlement across spot prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			fut, err := app.Registry.Futures(assets.FuturesSpec{
				Underlying:   app.Registry.Stock(underlying, assets.Price{}),
				Expiration:   expiration,
				ForwardPrice: forwardPrice,
				ContractSize: contractSize,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  forward %.2f  size %.0f\n", fut.Name(), fut.ForwardPrice(), fut.ContractSize())
			for _, spot := range spots {
				fmt.Fprintf(cmd.OutOrStdout(), "  spot %10.2f  payoff %s\n", spot, FormatSigned(fut.PriceAtExpiration(spot)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&underlying, "underlying", "", "underlying ticker")
	cmd.Flags().StringVar(&expiration, "expiration", "", "expiration date (YYMMDD)")
	cmd.Flags().Float64Var(&forwardPrice, "forward", 0, "forward price")
	cmd.Flags().Float64Var(&contractSize, "size", 1, "contract size")
	cmd.Flags().Float64SliceVar(&spots, "spot", nil, "spot prices to evaluate")
	_ = cmd.MarkFlagRequired("underlying")
	_ = cmd.MarkFlagRequired("expiration")
	_ = cmd.MarkFlagRequired("forward")
	_ = cmd.MarkFlagRequired("spot")
	return cmd
}
