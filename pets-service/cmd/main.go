package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const serviceName = "pets-service"

func main() {
	rootCmd := &cobra.Command{
		Use:   serviceName,
		Short: "Pet Store Service - REST API for the pets inventory",
		Long: `Pet Store Service lets clients create, read, update, delete, filter
and purchase pets. Without a subcommand the HTTP server is started.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCreateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
