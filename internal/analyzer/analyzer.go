package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

// Commit message styles.
const (
	StyleConventional = "conventional"
	StyleShort        = "short"
	StyleVerbose      = "verbose"
)

// ErrUnknownStyle signals a style token outside the three supported styles.
// It is a configuration error, distinct from anything classification can
// produce: classification itself never fails.
var ErrUnknownStyle = errors.New("unknown commit style")

// Styles returns the supported style tokens.
func Styles() []string {
	return []string{StyleConventional, StyleShort, StyleVerbose}
}

// ValidStyle reports whether s is one of the supported styles.
func ValidStyle(s string) bool {
	switch s {
	case StyleConventional, StyleShort, StyleVerbose:
		return true
	}
	return false
}

// Analyze runs the full classification pipeline on a raw diff. It is total:
// an empty or malformed diff still yields a chore-typed analysis with a
// generic summary.
func Analyze(diff string) DiffAnalysis {
	p := parseDiff(diff)
	lower := strings.ToLower(diff)

	commitType := InferType(p.files, p.changedContent, lower)
	scope := InferScope(p.files)
	summary := buildSummary(commitType, scope, p.files, p.totalAdded, p.totalRemoved)

	return DiffAnalysis{
		Files:        p.files,
		TotalAdded:   p.totalAdded,
		TotalRemoved: p.totalRemoved,
		Type:         commitType,
		Scope:        scope,
		Summary:      summary,
	}
}

// Render analyzes the diff and assembles the final message in the requested
// style. The only error it can return is ErrUnknownStyle.
func Render(diff, style string) (string, error) {
	a := Analyze(diff)

	header := a.Type
	if a.Scope != "" {
		header += "(" + a.Scope + ")"
	}

	switch style {
	case StyleConventional:
		return fmt.Sprintf("%s: %s", header, a.Summary), nil

	case StyleVerbose:
		body := buildBody(a.Files)
		if body == "" {
			return fmt.Sprintf("%s: %s", header, a.Summary), nil
		}
		return fmt.Sprintf("%s: %s\n\n%s", header, a.Summary, body), nil

	case StyleShort:
		if a.Scope != "" {
			return fmt.Sprintf("%s in %s", a.Summary, a.Scope), nil
		}
		return a.Summary, nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
}
