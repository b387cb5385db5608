package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/finai-labs/finai-go/internal/client"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and manage advisor sessions",
}

var sessionGetCmd = &cobra.Command{
	Use:   "get <session-id>",
	Short: "Show a session's state as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newClient().GetSession(cmd.Context(), args[0])
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("session %q not found", args[0])
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sess)
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, err := newClient().DeleteSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if deleted {
			fmt.Printf("deleted session %s\n", args[0])
		} else {
			fmt.Printf("session %s did not exist\n", args[0])
		}
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionGetCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
}
