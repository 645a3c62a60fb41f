package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCmd(open Opener) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect customer accounts",
	}

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Print the account number the next approval would receive",
		Long: `Print the smallest account number not currently in use. Closed accounts free
their number, so this may be lower than the highest existing account.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, open, func(ctx context.Context, svc *Services) error {
				n, err := svc.Customers.NextAccountNumber(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	})
	return accountsCmd
}
