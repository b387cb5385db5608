// Package cli provides the command-line interface for FinAI.
package cli

import (
	"fmt"
	"os"

	"github.com/finai-labs/finai-go/internal/client"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var serverURL string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "finai",
	Short: "AI financial advisor client",
	Long: `FinAI is an AI financial advisor: ask questions about personal finance
and get educational answers, with deterministic calculators for compound
interest, loan payments, retirement projections, and emergency funds.

The CLI talks to a running finai-server (see FINAI_SERVER_URL).`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server base URL (default FINAI_SERVER_URL or http://localhost:8000)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sessionCmd)
}

// newClient builds a REST client for the configured server.
func newClient() *client.Client {
	return client.New(serverURL)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
