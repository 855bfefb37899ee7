// Package generator orchestrates commit message generation: it picks a
// backend (offline analyzer or remote model) per diff, consults the message
// cache, and records history.
package generator

import (
	"context"
	"errors"

	"github.com/autocommit/autocommit-go/internal/analyzer"
)

// ErrNoStagedChanges signals that the staged diff is empty. Callers detect
// it with errors.Is and tell the user to stage something.
var ErrNoStagedChanges = errors.New("no staged changes")

// Generator maps a staged diff to a commit message. The one-operation
// contract lets the rule-based analyzer and the remote model swap freely.
type Generator interface {
	GenerateCommitMessage(ctx context.Context, diff string) (string, error)
}

// RuleBased adapts the offline analyzer to the Generator contract.
type RuleBased struct {
	style string
}

// NewRuleBased creates a rule-based generator for the given style.
func NewRuleBased(style string) *RuleBased {
	return &RuleBased{style: style}
}

// GenerateCommitMessage classifies the diff offline. The only possible error
// is an invalid style.
func (r *RuleBased) GenerateCommitMessage(_ context.Context, diff string) (string, error) {
	return analyzer.Render(diff, r.style)
}
