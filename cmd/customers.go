package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var customersSearch string

// customersCmd lists all customers, or fetches one by resource ID.
var customersCmd = &cobra.Command{
	Use:   "customers [resource-id]",
	Short: "List customers, or show a single customer by resource ID",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, cmdArgs []string) {
		ctx := cmd.Context()

		_, repository, _, err := newRepository(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		var result interface{}

		if len(cmdArgs) == 1 {
			result, err = repository.CustomerByID(ctx, cmdArgs[0])
		} else {
			result, err = repository.AllCustomers(ctx, customersSearch)
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
	customersCmd.Flags().
		StringVar(&customersSearch, "search", "", "case-insensitive filter over name, alias, external ID, city and country")

	rootCmd.AddCommand(customersCmd)
}
