package main

import (
	"fleetroute/config"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "routectl",
		Short:        "Fleet route planning from the command line",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (defaults to config.yaml in the standard search paths)")

	cmd.AddCommand(newPlanCmd(opts))

	return cmd
}

// loadConfig reads the configured file, falling back to the built-in
// defaults when no config file exists in the search paths.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		cfg, err := config.NewFromFile(o.configPath)
		if err != nil {
			return nil, errors.Wrap(err, "load config")
		}

		return cfg, nil
	}

	cfg, err := config.New()
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	return cfg, nil
}
