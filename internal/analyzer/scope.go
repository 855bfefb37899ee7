package analyzer

import (
	"path"
	"strings"
)

const maxScopeLen = 25

// genericBasenames are filenames that say nothing about what changed; for a
// single-file diff the parent directory is used instead.
var genericBasenames = map[string]bool{
	"index":    true,
	"main":     true,
	"app":      true,
	"__init__": true,
	"mod":      true,
	"lib":      true,
}

// InferScope derives a short identifier for the area of the codebase the
// change touches. Empty when the files share nothing meaningful.
func InferScope(files []FileChange) string {
	if len(files) == 0 {
		return ""
	}

	if len(files) == 1 {
		p := files[0].Path
		parts := strings.Split(p, "/")

		base := path.Base(p)
		if i := strings.Index(base, "."); i >= 0 {
			base = base[:i]
		}

		if genericBasenames[base] && len(parts) > 1 {
			base = parts[len(parts)-2]
		}

		return SanitizeScope(base)
	}

	// Multiple files: the deepest directory segment common to all paths.
	var common []string
	for i, f := range files {
		dirs := strings.Split(f.Path, "/")
		dirs = dirs[:len(dirs)-1] // drop the filename
		if i == 0 {
			common = dirs
			continue
		}
		var next []string
		for j := 0; j < len(common) && j < len(dirs); j++ {
			if common[j] != dirs[j] {
				break
			}
			next = append(next, common[j])
		}
		common = next
	}

	if len(common) > 0 {
		return SanitizeScope(common[len(common)-1])
	}

	// A shared extension alone is not a meaningful scope.
	return ""
}

// SanitizeScope normalizes a scope candidate: hyphens for underscores and
// spaces, [a-zA-Z0-9-] only, at most 25 characters, lowercased.
func SanitizeScope(scope string) string {
	if scope == "" {
		return ""
	}

	scope = strings.ReplaceAll(scope, "_", "-")
	scope = strings.ReplaceAll(scope, " ", "-")

	var sb strings.Builder
	for _, r := range scope {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		}
	}
	scope = sb.String()

	if len(scope) > maxScopeLen {
		scope = scope[:maxScopeLen]
	}

	return strings.ToLower(scope)
}
