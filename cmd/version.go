package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soc-toolbox/esmbridge/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print esmbridge version information",
	Run: func(_ *cobra.Command, _ []string) {
		if err := printJSON(version.Current()); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
