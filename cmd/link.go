package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	linkCustomerID   string
	unlinkCustomerID string
)

// linkCmd adds connectors to a customer's parent group.
var linkCmd = &cobra.Command{
	Use:   "link connector-id...",
	Short: "Link connectors to a customer",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, connectorIDs []string) {
		ctx := cmd.Context()

		_, repository, _, err := newRepository(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := repository.LinkConnectors(ctx, linkCustomerID, connectorIDs); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Printf("linked %d connector(s) to customer %s\n", len(connectorIDs), linkCustomerID)
	},
}

// unlinkCmd removes connectors from a customer's parent group. Removing an
// absent child is a no-op upstream, a repeat unlink succeeds.
var unlinkCmd = &cobra.Command{
	Use:   "unlink connector-id...",
	Short: "Unlink connectors from a customer",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, connectorIDs []string) {
		ctx := cmd.Context()

		_, repository, _, err := newRepository(ctx)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := repository.UnlinkConnectors(ctx, unlinkCustomerID, connectorIDs); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Printf("unlinked %d connector(s) from customer %s\n", len(connectorIDs), unlinkCustomerID)
	},
}

func init() {
	linkCmd.Flags().
		StringVar(&linkCustomerID, "customer", "", "customer resource ID")
	unlinkCmd.Flags().
		StringVar(&unlinkCustomerID, "customer", "", "customer resource ID")

	for _, c := range []*cobra.Command{linkCmd, unlinkCmd} {
		if err := c.MarkFlagRequired("customer"); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}
