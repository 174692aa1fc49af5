// Package commands is the command line entry point.
package commands

import (
	"fmt"
	"os"

	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/server"
	"github.com/spf13/cobra"
)

// rootCmd serves the API when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "portfolio-api",
	Short: "Portfolio CMS REST API",
	Long: `Portfolio CMS REST API for users, blogs, comments, contacts, projects,
services, service details and testimonials.

Configuration is read from a .env file and the environment.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run(config.Load())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
