// Package cli provides the command-line entry points for the eligibility service.
package cli

import (
	"github.com/spf13/cobra"

	"loan-eligibility/config"
)

const Version = "0.3.0"

// NewRootCmd creates the root command. Subcommands load configuration lazily
// so --help never touches backing stores.
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "loan-eligibility",
		Short:        "Loan eligibility and credit decisioning service",
		Version:      Version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml)")

	loadApp := func(cmd *cobra.Command) (*App, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return NewApp(cmd.Context(), cfg)
	}

	rootCmd.AddCommand(
		newServeCmd(loadApp),
		newEvaluateCmd(loadApp),
		newPrequalifyCmd(loadApp),
		newPoliciesCmd(loadApp),
	)
	return rootCmd
}

type appLoader func(cmd *cobra.Command) (*App, error)

func Execute() error {
	return NewRootCmd().Execute()
}
