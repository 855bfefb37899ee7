package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autocommit/autocommit-go/internal/analyzer"
	"github.com/autocommit/autocommit-go/internal/cache"
	"github.com/autocommit/autocommit-go/internal/config"
	"github.com/autocommit/autocommit-go/internal/generator"
	"github.com/autocommit/autocommit-go/internal/git"
	"github.com/autocommit/autocommit-go/internal/llm"
	"github.com/autocommit/autocommit-go/internal/settings"
)

var (
	flagStyle        string
	flagModel        string
	flagNoCache      bool
	flagDryRun       bool
	flagCommit       bool
	flagAlternatives bool
)

func init() {
	rootCmd.Flags().StringVar(&flagStyle, "style", "", "message style: conventional, short, verbose")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "backend: auto, rule-based, openai, gemini")
	rootCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "skip the message cache")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the message without committing")
	rootCmd.Flags().BoolVar(&flagCommit, "commit", false, "run git commit with the generated message")
	rootCmd.Flags().BoolVar(&flagAlternatives, "alternatives", false, "print two candidate messages instead of one")

	rootCmd.MarkFlagsMutuallyExclusive("commit", "dry-run")
	rootCmd.MarkFlagsMutuallyExclusive("commit", "alternatives")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	prefs := loadSettings()

	style := prefs.Style
	if flagStyle != "" {
		style = flagStyle
	}
	if !analyzer.ValidStyle(style) {
		return fmt.Errorf("invalid style %q (valid: %s)", style, strings.Join(analyzer.Styles(), ", "))
	}

	model := prefs.Model
	if flagModel != "" {
		model = flagModel
	}

	if prefs.AutoStage && !flagDryRun {
		if err := git.StageAll(); err != nil {
			logger.WithError(err).Warn("Failed to stage changes")
		}
	}

	diff, err := git.StagedDiff()
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Println("No staged changes detected. Stage some files and try again.")
		return nil
	}

	if prefs.ShowDiffPreview {
		printDiffPreview(diff)
	}

	branch, err := git.BranchName()
	if err != nil {
		logger.WithError(err).Warn("Failed to determine branch name")
		branch = ""
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	remote := buildRemote(ctx, model, style)

	svc := generator.NewService(generator.Options{
		Style:           style,
		Model:           model,
		UseCache:        prefs.UseCache && !flagNoCache,
		MaxDiffForRules: prefs.MaxDiffForRules,
	}, store, remote, logger)

	if flagAlternatives {
		candidates, err := svc.Alternatives(ctx, diff, branch)
		if err != nil {
			return err
		}
		for i, candidate := range candidates {
			fmt.Printf("%d. %s\n", i+1, candidate)
		}
		return nil
	}

	message, err := svc.Generate(ctx, diff, branch)
	if errors.Is(err, generator.ErrNoStagedChanges) {
		fmt.Println("No staged changes detected. Stage some files and try again.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(message)

	if !flagCommit || flagDryRun {
		return nil
	}

	if prefs.ConfirmBeforeCommit && !confirm("Commit with this message?") {
		fmt.Println("Aborted.")
		return nil
	}

	if err := git.Commit(message); err != nil {
		return err
	}
	fmt.Println("Committed.")

	if prefs.AutoPush {
		if err := git.Push(); err != nil {
			return err
		}
		fmt.Println("Pushed.")
	}
	return nil
}

// loadSettings reads the persistent preferences, falling back to defaults
// when the home directory is unavailable.
func loadSettings() settings.Settings {
	path, err := settings.DefaultPath()
	if err != nil {
		logger.WithError(err).Warn("Cannot locate settings file, using defaults")
		return settings.Default()
	}
	return settings.NewStore(path).Load()
}

// settingsStore returns the store the config subcommand mutates.
func settingsStore() (*settings.Store, error) {
	path, err := settings.DefaultPath()
	if err != nil {
		return nil, err
	}
	return settings.NewStore(path), nil
}

// openStore opens the cache/history database; a failure only disables
// caching, never the generation itself.
func openStore() *cache.Store {
	path, err := cache.DefaultPath()
	if err != nil {
		logger.WithError(err).Warn("Cannot locate cache database")
		return nil
	}
	store, err := cache.Open(path, logger)
	if err != nil {
		logger.WithError(err).Warn("Failed to open cache database")
		return nil
	}
	return store
}

// buildRemote constructs the remote backend when a usable API key exists.
// A forced openai/gemini model also forces the provider.
func buildRemote(ctx context.Context, model, style string) generator.Generator {
	switch model {
	case settings.ModelOpenAI:
		cfg.Provider = config.ProviderOpenAI
	case settings.ModelGemini:
		cfg.Provider = config.ProviderGemini
	case settings.ModelRuleBased:
		return nil
	}

	if !cfg.HasAPIKey() {
		return nil
	}

	client, err := llm.NewClient(ctx, cfg, style)
	if err != nil {
		logger.WithError(err).Warn("Remote backend unavailable")
		return nil
	}
	return client
}

func printDiffPreview(diff string) {
	const previewLines = 20
	lines := strings.Split(diff, "\n")
	fmt.Println("--- staged diff preview ---")
	for i, line := range lines {
		if i == previewLines {
			fmt.Printf("... (%d more lines)\n", len(lines)-previewLines)
			break
		}
		fmt.Println(line)
	}
	fmt.Println("---------------------------")
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
