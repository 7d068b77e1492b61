package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/soc-toolbox/esmbridge/internal/configuration"
	"github.com/soc-toolbox/esmbridge/internal/log"
	"github.com/soc-toolbox/esmbridge/internal/model"
	"github.com/soc-toolbox/esmbridge/internal/store"
)

var (
	args = &model.Args{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "esmbridge",
	Short: "esmbridge bridges an ESM resource hierarchy into a customer-centric view",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	log.InitLogger()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&args.ConfigFile, "config", "", "configuration file (default is ./config.yaml)")

	rootCmd.PersistentFlags().
		StringVar(&args.LogLevel, "log-level", "info", "set logging level - debug, trace")

	rootCmd.PersistentFlags().
		BoolVarP(&args.EnableProfiling, "enable-pprof", "", false, "Enable profiling endpoint at: http://localhost:9091")
}

// newRepository loads configuration and wires up the ESM-backed repository
// for the one-shot subcommands.
func newRepository(ctx context.Context) (*configuration.Configuration, store.Repository, *logrus.Logger, error) {
	config, err := configuration.Load(args)
	if err != nil {
		return nil, nil, nil, err
	}

	log.SetLevel(config.LogLevel)
	logger := log.NewLogrusLogger(config.LogLevel)

	repository, err := store.NewRepository(ctx, config, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	return config, repository, logger, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
