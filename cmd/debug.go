package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soc-toolbox/esmbridge/internal/configuration"
	"github.com/soc-toolbox/esmbridge/internal/esm"
	"github.com/soc-toolbox/esmbridge/internal/log"
)

var debugShowConfig bool

// debugCmd traces the customer-connector resolution chain step by step, so a
// failing stage can be pinpointed against a live upstream.
var debugCmd = &cobra.Command{
	Use:   "debug customer-id",
	Short: "Trace the hierarchy bridge for a customer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, cmdArgs []string) {
		ctx := cmd.Context()

		config, err := configuration.Load(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		log.SetLevel(config.LogLevel)
		logger := log.NewLogrusLogger(config.LogLevel)

		if debugShowConfig {
			redactedConfig, err := config.Redacted()
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			if err := printJSON(redactedConfig); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		}

		client, err := esm.New(ctx, config.Esm, logger)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := printJSON(client.TraceCustomer(ctx, cmdArgs[0])); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	debugCmd.Flags().
		BoolVar(&debugShowConfig, "show-config", false, "dump the effective configuration with secrets redacted")

	rootCmd.AddCommand(debugCmd)
}
