package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/autocommit/autocommit-go/internal/config"
)

// providerKeyPages are where each provider hands out API keys.
var providerKeyPages = map[string]string{
	config.ProviderOpenAI: "https://platform.openai.com/api-keys",
	config.ProviderGemini: "https://aistudio.google.com/apikey",
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys in the OS keychain",
}

var keysSetCmd = &cobra.Command{
	Use:   "set [provider]",
	Short: "Store an API key (prompted, hidden input)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := providerArg(args)

		km := config.NewKeyringManager()
		if !km.IsAvailable() {
			return fmt.Errorf("OS keychain unavailable; use the %s environment variable instead", envVarFor(provider))
		}

		fmt.Printf("Enter %s API key: ", provider)
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}

		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			return fmt.Errorf("no key entered")
		}

		if err := km.SaveAPIKey(provider, apiKey); err != nil {
			return err
		}
		fmt.Printf("Saved %s key to the OS keychain.\n", provider)
		return nil
	},
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configured keys (masked) and where they come from",
	RunE: func(cmd *cobra.Command, args []string) error {
		km := config.NewKeyringManager()

		for _, provider := range []string{config.ProviderOpenAI, config.ProviderGemini} {
			key, _ := km.GetAPIKey(provider)
			fmt.Printf("%-7s keychain: %s\n", provider, config.MaskAPIKey(key))
		}
		fmt.Printf("active provider: %s (key source: %s)\n", cfg.Provider, km.KeySource(cfg))
		return nil
	},
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete [provider]",
	Short: "Remove an API key from the OS keychain",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := providerArg(args)
		km := config.NewKeyringManager()
		if err := km.DeleteAPIKey(provider); err != nil {
			return err
		}
		fmt.Printf("Deleted %s key from the OS keychain.\n", provider)
		return nil
	},
}

var keysOpenCmd = &cobra.Command{
	Use:   "open [provider]",
	Short: "Open the provider's API key page in a browser",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := providerArg(args)
		url, ok := providerKeyPages[provider]
		if !ok {
			return fmt.Errorf("unknown provider %q", provider)
		}
		fmt.Printf("Opening %s\n", url)
		if err := browser.OpenURL(url); err != nil {
			fmt.Println("Could not open a browser automatically; please visit the URL above.")
		}
		return nil
	},
}

// providerArg resolves the optional provider argument, defaulting to the
// configured provider.
func providerArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Provider
}

func envVarFor(provider string) string {
	if provider == config.ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func init() {
	keysCmd.AddCommand(keysSetCmd)
	keysCmd.AddCommand(keysShowCmd)
	keysCmd.AddCommand(keysDeleteCmd)
	keysCmd.AddCommand(keysOpenCmd)
}
