package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure providers, the document source and the server.

Configuration lives in a TOML file; "settings set" persists changes
immediately. Secret values are prompted without echo when no value is
given on the command line.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by dot-notation key, e.g.:

  inkwell settings set llm.provider openai
  inkwell settings set embedding.provider openai
  inkwell settings set vectorstore.provider pinecone
  inkwell settings set memory.backend sqlite
  inkwell settings set chunker.chunk_size 800

For secret keys (any key ending in api_key or ingest_secret), omit the
value to be prompted without terminal echo:

  inkwell settings set llm.api_key`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	printProvider(cmd, "llm", "openai or ollama")
	cmd.Println()

	cmd.Println("[Embedding]")
	printProvider(cmd, "embedding", "openai or ollama")
	cmd.Println()

	cmd.Println("[Vector Store]")
	provider := configStore.GetString("vectorstore.provider")
	if provider == "" {
		provider = "memory (default)"
	}
	cmd.Printf("  Provider: %s\n", provider)
	if host := configStore.GetString("vectorstore.host"); host != "" {
		cmd.Printf("  Host: %s\n", host)
	}
	if key := configStore.GetString("vectorstore.api_key"); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	}
	cmd.Println()

	cmd.Println("[Client Memory]")
	backend := configStore.GetString("memory.backend")
	if backend == "" {
		backend = "(disabled)"
	}
	cmd.Printf("  Backend: %s\n", backend)
	if key := configStore.GetString("memory.api_key"); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	}
	cmd.Println()

	cmd.Println("[Document Source]")
	kind := configStore.GetString("source.type")
	if kind == "" {
		kind = "fixture (default)"
	}
	cmd.Printf("  Type: %s\n", kind)
	if dir := configStore.GetString("source.dir"); dir != "" {
		cmd.Printf("  Directory: %s\n", dir)
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func printProvider(cmd *cobra.Command, section, hint string) {
	provider := configStore.GetString(section + ".provider")
	if provider == "" {
		cmd.Printf("  Provider: (not set; %s)\n", hint)
		return
	}
	cmd.Printf("  Provider: %s\n", provider)
	if model := configStore.GetString(section + ".model"); model != "" {
		cmd.Printf("  Model: %s\n", model)
	}
	if url := configStore.GetString(section + ".base_url"); url != "" {
		cmd.Printf("  Base URL: %s\n", url)
	}
	if key := configStore.GetString(section + ".api_key"); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else if provider == "openai" {
		cmd.Printf("  API Key: (not set)\n")
	}
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	key := args[0]

	var value string
	if len(args) == 2 {
		value = args[1]
	} else if isSecretKey(key) {
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword()
		cmd.Println()
		if value == "" {
			return errors.New("empty value")
		}
	} else {
		return fmt.Errorf("missing value for %s", key)
	}

	if err := configStore.Set(key, coerceValue(value)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	if isSecretKey(key) {
		cmd.Printf("Set %s = %s\n", key, maskAPIKey(value))
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key") || strings.HasSuffix(key, "ingest_secret")
}

// coerceValue stores numerals and booleans with their natural TOML types.
func coerceValue(value string) any {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
