package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/autocommit/autocommit-go/internal/cache"
	"github.com/autocommit/autocommit-go/internal/settings"
)

// Options control one generation run. Zero values are not usable; build via
// the settings store plus CLI flag overrides.
type Options struct {
	Style           string
	Model           string // auto, rule-based, openai, gemini
	UseCache        bool
	MaxDiffForRules int
}

// Service wires backend selection, caching and history together.
type Service struct {
	opts   Options
	store  *cache.Store // nil disables caching and history
	remote Generator    // nil when no API key is configured
	logger *logrus.Logger
}

// NewService creates a generation service. remote may be nil; rule-based
// generation then covers every diff regardless of size.
func NewService(opts Options, store *cache.Store, remote Generator, logger *logrus.Logger) *Service {
	return &Service{opts: opts, store: store, remote: remote, logger: logger}
}

// Generate produces a commit message for the staged diff. The branch name is
// passed to the remote backend as extra context; the offline analyzer
// ignores it. An empty diff returns ErrNoStagedChanges.
func (s *Service) Generate(ctx context.Context, diff, branch string) (string, error) {
	if strings.TrimSpace(diff) == "" {
		return "", ErrNoStagedChanges
	}

	if s.opts.UseCache && s.store != nil {
		if msg, ok := s.store.Get(diff, s.opts.Style); ok {
			s.logger.WithField("style", s.opts.Style).Debug("Using cached message")
			return msg, nil
		}
	}

	message, model, err := s.generate(ctx, diff, branch)
	if err != nil {
		return "", err
	}

	if s.store != nil {
		if s.opts.UseCache {
			if err := s.store.Put(diff, s.opts.Style, message); err != nil {
				s.logger.WithError(err).Warn("Failed to cache message")
			}
		}
		if err := s.store.AppendHistory(model, s.opts.Style, message); err != nil {
			s.logger.WithError(err).Warn("Failed to record history")
		}
	}

	return message, nil
}

// generate runs the selected backend and reports which model produced the
// message. In auto mode a remote failure falls back to the rule-based path.
func (s *Service) generate(ctx context.Context, diff, branch string) (message, model string, err error) {
	ruleBased := NewRuleBased(s.opts.Style)

	switch s.opts.Model {
	case settings.ModelRuleBased:
		message, err = ruleBased.GenerateCommitMessage(ctx, diff)
		return message, settings.ModelRuleBased, err

	case settings.ModelOpenAI, settings.ModelGemini:
		if s.remote == nil {
			return "", "", fmt.Errorf("model %q requested but no API key is configured", s.opts.Model)
		}
		message, err = s.remote.GenerateCommitMessage(ctx, withBranchContext(diff, branch))
		return message, s.opts.Model, err

	case settings.ModelAuto:
		if s.remote != nil && len(diff) > s.opts.MaxDiffForRules {
			s.logger.WithFields(logrus.Fields{
				"diff_chars": len(diff),
				"threshold":  s.opts.MaxDiffForRules,
			}).Debug("Diff too large for rule-based generation, using remote model")

			message, err = s.remote.GenerateCommitMessage(ctx, withBranchContext(diff, branch))
			if err == nil {
				return message, "remote", nil
			}
			s.logger.WithError(err).Warn("Remote generation failed, falling back to rule-based")
		}
		message, err = ruleBased.GenerateCommitMessage(ctx, diff)
		return message, settings.ModelRuleBased, err

	default:
		return "", "", fmt.Errorf("unknown model %q", s.opts.Model)
	}
}

// Alternatives produces up to two candidate messages for the same diff: the
// deterministic rule-based one and, when a remote backend is available, a
// higher-variance remote one. The two runs are independent, so they execute
// concurrently.
func (s *Service) Alternatives(ctx context.Context, diff, branch string) ([]string, error) {
	if strings.TrimSpace(diff) == "" {
		return nil, ErrNoStagedChanges
	}

	var ruleMsg, remoteMsg string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ruleMsg, err = NewRuleBased(s.opts.Style).GenerateCommitMessage(ctx, diff)
		return err
	})
	if s.remote != nil {
		g.Go(func() error {
			var err error
			remoteMsg, err = s.remote.GenerateCommitMessage(ctx, withBranchContext(diff, branch))
			if err != nil {
				// the rule-based candidate still stands on its own
				s.logger.WithError(err).Warn("Remote candidate failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := []string{ruleMsg}
	if remoteMsg != "" && remoteMsg != ruleMsg {
		candidates = append(candidates, remoteMsg)
	}
	return candidates, nil
}

// withBranchContext appends the branch name for the remote model; it is a
// useful hint for type and scope.
func withBranchContext(diff, branch string) string {
	if branch == "" {
		return diff
	}
	return diff + "\n\nBranch: " + branch
}
