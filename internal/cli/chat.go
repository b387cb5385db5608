package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var chatSessionID string

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787"))
	toolStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF005F")).Bold(true)
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive advisor session",
	Long: `Start an interactive chat with the financial advisor.

Each turn is sent to the server with the full conversation so far. Messages
that ask for a calculation (compound interest, loan payments, retirement
savings, emergency funds) run the matching calculator and the advisor
explains the numbers.

Type "exit" or press Ctrl-D to leave.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSessionID, "session", "", "resume an existing session id")
}

func runChat(cmd *cobra.Command, args []string) error {
	c := newClient()
	ctx := cmd.Context()

	history := []string{}
	sessionID := chatSessionID

	fmt.Println(assistantStyle.Render("FinAI ready. Ask away, or type \"exit\" to quit."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			return nil
		}

		history = append(history, message)

		result, err := c.Chat(ctx, history, sessionID, nil)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("error: %v", err)))
			// Drop the failed message so the next turn does not resend it
			// against a turn that never happened.
			history = history[:len(history)-1]
			continue
		}

		sessionID = result.SessionID
		history = append(history, result.Response)

		if len(result.ToolsUsed) > 0 {
			fmt.Println(toolStyle.Render("tools: " + strings.Join(result.ToolsUsed, ", ")))
		}
		fmt.Println(assistantStyle.Render(result.Response))
		fmt.Println()
	}
}
