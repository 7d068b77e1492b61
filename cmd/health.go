package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// healthCmd prints the merged live/dead connector summary.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show the connector health summary",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		_, repository, _, err := newRepository(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		health, err := repository.ConnectorHealth(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := printJSON(health); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
