package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var connectorsCustomerID string

// connectorsCmd lists connectors, either the whole estate or the ones
// reporting to a single customer (joined with device details).
var connectorsCmd = &cobra.Command{
	Use:   "connectors",
	Short: "List connectors, optionally scoped to a customer",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		_, repository, _, err := newRepository(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		var result interface{}

		if connectorsCustomerID != "" {
			connectors, cerr := repository.ConnectorsForCustomer(ctx, connectorsCustomerID)
			err = cerr

			for i := range connectors {
				slog.Debug("Found connector", connectors[i].AsLogFields()...)
			}

			result = connectors
		} else {
			result, err = repository.AllConnectors(ctx)
		}

		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := printJSON(result); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	connectorsCmd.Flags().
		StringVar(&connectorsCustomerID, "customer", "", "customer resource ID to scope the listing to")

	rootCmd.AddCommand(connectorsCmd)
}
