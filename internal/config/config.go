// Package config loads API credentials and remote-model options from the
// config file, environment variables, .env files and the OS keychain, in
// that order of precedence (environment wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the remote-model configuration. User preferences that do not
// involve credentials live in the settings store instead.
type Config struct {
	// Provider selects the remote backend: "openai" or "gemini".
	Provider string `yaml:"provider" mapstructure:"provider"`

	OpenAIKey   string `yaml:"openai_key" mapstructure:"openai_key"`
	OpenAIModel string `yaml:"openai_model" mapstructure:"openai_model"`

	GeminiKey   string `yaml:"gemini_key" mapstructure:"gemini_key"`
	GeminiModel string `yaml:"gemini_model" mapstructure:"gemini_model"`

	// UseKeychain prefers the OS keychain over plaintext config values.
	UseKeychain bool `yaml:"use_keychain" mapstructure:"use_keychain"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Provider:    "openai",
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
		UseKeychain: true,
	}
}

// DefaultDir returns ~/.autocommit.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".autocommit"), nil
}

// Load reads configuration from the given file (or the standard locations
// when path is empty), applies environment overrides, and fills missing keys
// from the OS keychain.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("provider", cfg.Provider)
	v.SetDefault("openai_model", cfg.OpenAIModel)
	v.SetDefault("gemini_model", cfg.GeminiModel)
	v.SetDefault("use_keychain", cfg.UseKeychain)

	v.SetEnvPrefix("AUTOCOMMIT")
	v.AutomaticEnv()

	if path != "" {
		// an explicitly named but absent file means "use defaults", same
		// as when no file is found in the search path
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".autocommit")
		v.AddConfigPath(".")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// missing config file is fine, defaults apply
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)
	fillFromKeychain(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	if dir, err := DefaultDir(); err == nil {
		homeEnv := filepath.Join(dir, ".env")
		if _, err := os.Stat(homeEnv); err == nil {
			godotenv.Load(homeEnv)
		}
	}
}

// applyEnvOverrides gives the well-known provider variables the last word.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.GeminiKey = key
	}
	if provider := os.Getenv("AUTOCOMMIT_PROVIDER"); provider != "" {
		cfg.Provider = provider
	}
}

// fillFromKeychain fills still-missing keys from the OS keychain.
func fillFromKeychain(cfg *Config) {
	if !cfg.UseKeychain {
		return
	}
	km := NewKeyringManager()
	if cfg.OpenAIKey == "" {
		if key, err := km.GetAPIKey(ProviderOpenAI); err == nil {
			cfg.OpenAIKey = key
		}
	}
	if cfg.GeminiKey == "" {
		if key, err := km.GetAPIKey(ProviderGemini); err == nil {
			cfg.GeminiKey = key
		}
	}
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiKey
	}
	return c.OpenAIKey
}

// HasAPIKey reports whether the configured provider has a usable key.
func (c *Config) HasAPIKey() bool {
	return c.APIKey() != ""
}

// WriteDefault writes a commented default config file at path, creating the
// directory if needed. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}

	header := []byte("# autocommit configuration\n# API keys are better kept in the OS keychain (autocommit keys set)\n# or the OPENAI_API_KEY / GEMINI_API_KEY environment variables.\n")
	if err := os.WriteFile(path, append(header, data...), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
