package analyzer

import (
	"fmt"
	"path"
	"strings"
)

// testTokenReplacer strips test markers from a scope so "test-parser" reads
// as "parser" in the summary.
var testTokenReplacer = strings.NewReplacer(
	"-test", "",
	"test-", "",
	"_test", "",
	"test_", "",
)

// buildSummary maps (type, files, counts) to a one-line description. The
// mapping is total: every reachable combination yields a non-empty string.
func buildSummary(commitType, scope string, files []FileChange, totalAdded, totalRemoved int) string {
	fileCount := len(files)
	newFiles, deletedFiles := 0, 0
	for _, f := range files {
		if f.IsNew {
			newFiles++
		}
		if f.IsDeleted {
			deletedFiles++
		}
	}

	target := scope
	if target == "" && fileCount > 0 {
		base := path.Base(files[0].Path)
		if i := strings.Index(base, "."); i >= 0 {
			base = base[:i]
		}
		target = base
	}
	if target == "" {
		target = "code"
	}

	var action string
	switch {
	case totalAdded > 0 && totalRemoved == 0:
		action = "add"
	case totalRemoved > 0 && totalAdded == 0:
		action = "remove"
	default:
		action = "update"
	}

	switch commitType {
	case "docs":
		if action == "add" {
			return fmt.Sprintf("add documentation for %s", target)
		}
		return fmt.Sprintf("update documentation for %s", target)

	case "test":
		cleanTarget := testTokenReplacer.Replace(target)
		if fileCount == 1 {
			if action == "add" {
				return fmt.Sprintf("add tests for %s", cleanTarget)
			}
			return fmt.Sprintf("update tests for %s", cleanTarget)
		}
		if action == "add" {
			return fmt.Sprintf("add tests for %d modules", fileCount)
		}
		return "update test suite"

	case "fix":
		if fileCount == 1 {
			return fmt.Sprintf("fix issue in %s", target)
		}
		return fmt.Sprintf("fix issues in %d files", fileCount)

	case "feat":
		if fileCount > 0 && newFiles == fileCount {
			if fileCount == 1 {
				return fmt.Sprintf("add %s", target)
			}
			return fmt.Sprintf("add %d new files", fileCount)
		}
		if fileCount == 1 {
			return fmt.Sprintf("add feature to %s", target)
		}
		return "implement new features"

	case "refactor":
		if deletedFiles > 0 {
			return fmt.Sprintf("cleanup and refactor %s", target)
		}
		if fileCount == 1 {
			return fmt.Sprintf("refactor %s", target)
		}
		return fmt.Sprintf("refactor codebase (%d files)", fileCount)

	case "style":
		return "format code style"

	case "perf":
		return fmt.Sprintf("improve performance of %s", target)

	case "deps":
		return "update dependencies"

	case "build":
		return "update build configuration"

	case "ci":
		return "update CI/CD configuration"
	}

	if fileCount > 1 {
		switch action {
		case "add":
			return fmt.Sprintf("add %d files", fileCount)
		case "remove":
			return fmt.Sprintf("remove content from %d files", fileCount)
		}
		return fmt.Sprintf("update %d files", fileCount)
	}

	switch action {
	case "add":
		return fmt.Sprintf("add %s", target)
	case "remove":
		return fmt.Sprintf("remove %s", target)
	}
	return fmt.Sprintf("update %s", target)
}

// maxBodyFiles caps the verbose body at five per-file entries.
const maxBodyFiles = 5

// buildBody renders the per-file bullet list used by the verbose style.
// Empty when the diff touched no files.
func buildBody(files []FileChange) string {
	if len(files) == 0 {
		return ""
	}

	lines := []string{"Changed files:"}
	for i, f := range files {
		if i == maxBodyFiles {
			break
		}
		switch {
		case f.IsNew:
			lines = append(lines, fmt.Sprintf("  + %s (new)", f.Path))
		case f.IsDeleted:
			lines = append(lines, fmt.Sprintf("  - %s (deleted)", f.Path))
		default:
			lines = append(lines, fmt.Sprintf("  * %s (+%d, -%d)", f.Path, f.Added, f.Removed))
		}
	}
	if len(files) > maxBodyFiles {
		lines = append(lines, fmt.Sprintf("  ... and %d more files", len(files)-maxBodyFiles))
	}

	return strings.Join(lines, "\n")
}
