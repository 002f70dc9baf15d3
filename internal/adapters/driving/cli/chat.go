package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driving"
)

// chatTurnTimeout bounds a single chat turn, matching the HTTP handler.
const chatTurnTimeout = 60 * time.Second

var chatClientID string

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the studio assistant",
	Long: `Sends a message to the studio assistant and streams the reply.

With a message argument, runs a single turn and exits. Without arguments,
starts an interactive session; type "exit" to leave.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatClientID, "user", "u", "", "client id for memory recall")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat not configured: set llm.provider, embedding.provider and vectorstore.provider")
	}

	if len(args) == 1 {
		_, err := chatTurn(cmd, []domain.Message{
			{Role: domain.MessageRoleUser, Content: args[0]},
		})
		return err
	}

	return chatREPL(cmd)
}

func chatREPL(cmd *cobra.Command) error {
	cmd.Println("Black Ink studio assistant. Type \"exit\" to leave.")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)
	var history []domain.Message

	for {
		cmd.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the session cleanly.
			cmd.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		history = append(history, domain.Message{Role: domain.MessageRoleUser, Content: line})

		reply, err := chatTurn(cmd, history)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			history = history[:len(history)-1]
			continue
		}
		history = append(history, domain.Message{Role: domain.MessageRoleAssistant, Content: reply})
	}
}

// chatTurn runs one turn, streaming deltas to the command output, and
// returns the full reply.
func chatTurn(cmd *cobra.Command, messages []domain.Message) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), chatTurnTimeout)
	defer cancel()

	result, err := chatService.Respond(ctx, driving.ChatRequest{
		ClientID: chatClientID,
		Messages: messages,
	}, func(delta string) {
		fmt.Fprint(cmd.OutOrStdout(), delta)
	})
	if err != nil {
		return "", err
	}

	cmd.Println()
	if verbose {
		cmd.Printf("[agent: %s, sources: %d]\n", result.Role, len(result.Sources))
	}
	return result.Reply, nil
}
