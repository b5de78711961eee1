package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"geometric-transformations/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "geotransform",
	Short:         "Apply geometric transformations to images",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Verbose text logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger for a subcommand.
// Log output goes to stderr so stdout stays clean for results.
func setup(cmd *cobra.Command) (config.Config, *logrus.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger := cfg.NewLogger(debug)
	logger.SetOutput(os.Stderr)
	return cfg, logger, nil
}
