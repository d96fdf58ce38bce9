package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"assetctl/internal/expiry"
)

func newExpiryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expiry YYMMDD",
		Short: "Show time to expiration for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := expiry.Parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "expiration  %s\n", e.String())
			fmt.Fprintf(out, "T           %.6f years\n", e.T())
			fmt.Fprintf(out, "days        %.2f\n", e.DaysToExpiration())
			if e.IsExpired() {
				fmt.Fprintf(out, "status      %s\n", color.RedString("EXPIRED"))
			} else {
				fmt.Fprintf(out, "status      %s\n", color.GreenString("ALIVE"))
			}
			return nil
		},
	}
}
