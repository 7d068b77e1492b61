package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// devicesCmd dumps the global connector device map.
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Dump the connector device map",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		_, repository, _, err := newRepository(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		devices, err := repository.ConnectorDevices(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := printJSON(devices); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
