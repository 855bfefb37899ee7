package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocommit/autocommit-go/internal/analyzer"
	"github.com/autocommit/autocommit-go/internal/config"
)

func TestSystemPromptPerStyle(t *testing.T) {
	conv := SystemPrompt(analyzer.StyleConventional)
	assert.Contains(t, conv, "Conventional Commits")

	short := SystemPrompt(analyzer.StyleShort)
	assert.Contains(t, short, "single-line")

	verbose := SystemPrompt(analyzer.StyleVerbose)
	assert.Contains(t, verbose, "body explaining what and why")

	// unknown styles fall back to conventional
	assert.Equal(t, conv, SystemPrompt("haiku"))
}

func TestUserPromptContainsDiff(t *testing.T) {
	diff := "diff --git a/x.go b/x.go\n+added"
	assert.Contains(t, UserPrompt(diff), diff)
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "feat: add thing", "feat: add thing"},
		{"surrounding whitespace", "  feat: add thing\n", "feat: add thing"},
		{
			"fenced",
			"```\nfeat: add thing\n```",
			"feat: add thing",
		},
		{
			"fenced with language",
			"```text\nfix(core): handle nil\n```",
			"fix(core): handle nil",
		},
		{"bare fence", "```", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.in))
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, &config.Config{Provider: "openai"}, analyzer.StyleConventional)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API key")

	_, err = NewClient(ctx, &config.Config{Provider: "gemini"}, analyzer.StyleConventional)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API key")
}

func TestNewClientRejectsUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &config.Config{Provider: "mistral"}, analyzer.StyleShort)
	assert.Error(t, err)
}

func TestNewClientOpenAI(t *testing.T) {
	cfg := &config.Config{Provider: "openai", OpenAIKey: "sk-test", OpenAIModel: "gpt-4o-mini"}
	c, err := NewClient(context.Background(), cfg, analyzer.StyleConventional)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, c.Provider())
}
