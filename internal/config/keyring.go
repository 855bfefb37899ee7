package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zalando/go-keyring"
)

// Provider tokens for keychain items.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "Autocommit"

	keyringOpenAIItem = "openai-api-key"
	keyringGeminiItem = "gemini-api-key"
)

// KeyringManager handles secure credential storage in the OS keychain.
// macOS Keychain, Windows Credential Manager, Linux Secret Service.
type KeyringManager struct {
	logger *slog.Logger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{
		logger: slog.Default().With("component", "keyring"),
	}
}

func keyringItem(provider string) (string, error) {
	switch provider {
	case ProviderOpenAI:
		return keyringOpenAIItem, nil
	case ProviderGemini:
		return keyringGeminiItem, nil
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
}

// SaveAPIKey stores an API key for the given provider in the OS keychain.
func (km *KeyringManager) SaveAPIKey(provider, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}

	item, err := keyringItem(provider)
	if err != nil {
		return err
	}

	if err := keyring.Set(KeyringService, item, apiKey); err != nil {
		km.logger.Error("failed to save API key to keychain", "provider", provider, "error", err)
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}

	km.logger.Info("api key saved to keychain", "service", KeyringService, "provider", provider)
	return nil
}

// GetAPIKey retrieves the provider's API key from the OS keychain.
// A missing key is not an error; it returns the empty string.
func (km *KeyringManager) GetAPIKey(provider string) (string, error) {
	item, err := keyringItem(provider)
	if err != nil {
		return "", err
	}

	apiKey, err := keyring.Get(KeyringService, item)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		km.logger.Error("failed to get API key from keychain", "provider", provider, "error", err)
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}

	km.logger.Debug("api key retrieved from keychain", "provider", provider)
	return apiKey, nil
}

// DeleteAPIKey removes the provider's API key from the OS keychain.
func (km *KeyringManager) DeleteAPIKey(provider string) error {
	item, err := keyringItem(provider)
	if err != nil {
		return err
	}

	err = keyring.Delete(KeyringService, item)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		km.logger.Error("failed to delete API key from keychain", "provider", provider, "error", err)
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}

	km.logger.Info("api key deleted from keychain", "provider", provider)
	return nil
}

// IsAvailable checks if the OS keychain is usable. Returns false on headless
// systems (CI) without a secret service.
func (km *KeyringManager) IsAvailable() bool {
	_, err := keyring.Get(KeyringService, "test-availability")
	if err == keyring.ErrNotFound {
		return true
	}
	if err != nil {
		km.logger.Debug("keychain not available", "error", err)
		return false
	}
	return true
}

// KeySource reports where the active provider's API key comes from.
func (km *KeyringManager) KeySource(cfg *Config) string {
	envVar := "OPENAI_API_KEY"
	if cfg.Provider == ProviderGemini {
		envVar = "GEMINI_API_KEY"
	}
	if os.Getenv(envVar) != "" {
		return "environment"
	}
	if key, _ := km.GetAPIKey(cfg.Provider); key != "" {
		return "keychain"
	}
	if cfg.APIKey() != "" {
		return "config_file"
	}
	return "none"
}

// MaskAPIKey masks an API key for display: "sk-proj...abc1".
func MaskAPIKey(apiKey string) string {
	if apiKey == "" {
		return "(not set)"
	}
	if len(apiKey) < 12 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", apiKey[:7], apiKey[len(apiKey)-4:])
}
