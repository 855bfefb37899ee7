package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "provider: gemini\ngemini_model: gemini-1.5-pro\nuse_keychain: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	// unset keys keep their defaults
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
}

func TestEnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai_key: from-file\nuse_keychain: false\n"), 0600))

	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("AUTOCOMMIT_PROVIDER", "gemini")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OpenAIKey)
	assert.Equal(t, "gemini", cfg.Provider)
}

func TestAPIKeyFollowsProvider(t *testing.T) {
	cfg := &Config{Provider: ProviderOpenAI, OpenAIKey: "sk-o", GeminiKey: "g-k"}
	assert.Equal(t, "sk-o", cfg.APIKey())
	assert.True(t, cfg.HasAPIKey())

	cfg.Provider = ProviderGemini
	assert.Equal(t, "g-k", cfg.APIKey())

	empty := &Config{Provider: ProviderOpenAI}
	assert.False(t, empty.HasAPIKey())
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider: openai")
	assert.Contains(t, string(data), "openai_model: gpt-4o-mini")

	// refuses to clobber
	assert.Error(t, WriteDefault(path))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "(not set)", MaskAPIKey(""))
	assert.Equal(t, "***", MaskAPIKey("short"))
	assert.Equal(t, "sk-proj...wxyz", MaskAPIKey("sk-proj-abcdefghijklmnopwxyz"))
}

func TestKeyringManagerRoundTrip(t *testing.T) {
	km := NewKeyringManager()
	if !km.IsAvailable() {
		t.Skip("Keychain not available, skipping test")
	}
	defer km.DeleteAPIKey(ProviderOpenAI)

	require.NoError(t, km.SaveAPIKey(ProviderOpenAI, "sk-test123456789"))

	got, err := km.GetAPIKey(ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-test123456789", got)

	require.NoError(t, km.DeleteAPIKey(ProviderOpenAI))
	got, err = km.GetAPIKey(ProviderOpenAI)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKeyringRejectsUnknownProvider(t *testing.T) {
	km := NewKeyringManager()
	assert.Error(t, km.SaveAPIKey("mistral", "key"))
	_, err := km.GetAPIKey("mistral")
	assert.Error(t, err)
}

func TestSaveAPIKeyRejectsEmpty(t *testing.T) {
	km := NewKeyringManager()
	assert.Error(t, km.SaveAPIKey(ProviderOpenAI, ""))
}
