package analyzer

import "strings"

// category holds the scoring configuration for one commit type. The slice
// below is deliberately ordered: ties resolve to the earliest declared
// category, so declaration order is part of the contract.
type category struct {
	name         string
	keywords     []string // substring matches against changed-line content
	pathPatterns []string // substring matches against touched file paths
	priority     int
}

var categories = []category{
	{
		name:     "feat",
		keywords: []string{"add", "new", "create", "implement", "feature", "introduce"},
		priority: 5,
	},
	{
		name:     "fix",
		keywords: []string{"fix", "bug", "error", "issue", "hotfix", "patch", "resolve", "repair"},
		priority: 10,
	},
	{
		name:         "docs",
		keywords:     []string{"document", "readme", "changelog", "docs", "comment", "jsdoc", "docstring"},
		pathPatterns: []string{".md", "readme", "docs/", "doc/", "changelog", ".rst", ".txt"},
		priority:     8,
	},
	{
		name:         "style",
		keywords:     []string{"format", "lint", "style", "prettier", "eslint", "whitespace", "indent"},
		pathPatterns: []string{".prettierrc", ".eslintrc", ".stylelintrc"},
		priority:     3,
	},
	{
		name:     "refactor",
		keywords: []string{"refactor", "cleanup", "clean", "organize", "restructure", "simplify", "rename", "move"},
		priority: 4,
	},
	{
		name:     "perf",
		keywords: []string{"performance", "optimize", "speed", "fast", "cache", "lazy", "perf"},
		priority: 6,
	},
	{
		name:         "test",
		keywords:     []string{"test", "spec", "coverage", "mock", "stub", "e2e", "unit"},
		pathPatterns: []string{".test.", "_test.", "test_", ".spec.", "_spec.", "tests/", "__tests__/", "spec/"},
		priority:     7,
	},
	{
		name:         "build",
		keywords:     []string{"build", "compile", "bundle", "webpack", "vite", "rollup"},
		pathPatterns: []string{"webpack", "vite.config", "rollup.config", "tsconfig", "babel.config"},
		priority:     6,
	},
	{
		name:         "ci",
		keywords:     []string{"ci", "pipeline", "workflow", "deploy", "github actions", "jenkins"},
		pathPatterns: []string{".github/", ".gitlab-ci", "jenkinsfile", ".travis", ".circleci", "azure-pipelines"},
		priority:     7,
	},
	{
		name:         "chore",
		keywords:     []string{"chore", "misc", "update", "upgrade", "maintain"},
		pathPatterns: []string{".gitignore", ".editorconfig", ".nvmrc", ".node-version"},
		priority:     1,
	},
	{
		name:         "deps",
		keywords:     []string{"dependency", "dependencies", "package", "install", "upgrade"},
		pathPatterns: []string{"package.json", "package-lock.json", "yarn.lock", "requirements", "pyproject.toml", "poetry.lock", "go.mod", "cargo.toml", "gemfile"},
		priority:     6,
	},
}

// fixIndicators force extra weight on the fix category when they show up
// anywhere in the diff text, including context lines.
var fixIndicators = []string{"fix", "bug", "error", "issue", "crash", "problem", "broken"}

// CommitTypes returns the fixed set of commit-type tags in declaration order.
func CommitTypes() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

// InferType scores every category against the parsed files, the changed-line
// content, and the full diff text, and returns the single best commit type.
// Both text arguments are expected lowercased. Returns "chore" when nothing
// scores above zero.
func InferType(files []FileChange, changedContent, fullDiff string) string {
	scores := scoreCategories(files, changedContent, fullDiff)
	return resolveType(scores)
}

// scoreCategories is the single additive scoring pass. No mutation of inputs,
// no iteration to convergence.
func scoreCategories(files []FileChange, changedContent, fullDiff string) map[string]int {
	scores := make(map[string]int)

	var sb strings.Builder
	for _, f := range files {
		sb.WriteString(strings.ToLower(f.Path))
		sb.WriteByte(' ')
	}
	filePaths := sb.String()

	// File path patterns are the stronger signal, hence double weight.
	for _, c := range categories {
		for _, pattern := range c.pathPatterns {
			if strings.Contains(filePaths, pattern) {
				scores[c.name] += c.priority * 2
			}
		}
		for _, keyword := range c.keywords {
			if strings.Contains(changedContent, keyword) {
				scores[c.name] += c.priority
			}
		}
	}

	newFiles, deletedFiles, totalAdded, totalRemoved := 0, 0, 0, 0
	for _, f := range files {
		if f.IsNew {
			newFiles++
		}
		if f.IsDeleted {
			deletedFiles++
		}
		totalAdded += f.Added
		totalRemoved += f.Removed
	}

	if len(files) > 0 && newFiles == len(files) {
		scores["feat"] += 15
	}
	if len(files) > 0 && deletedFiles == len(files) {
		scores["chore"] += 10
	}

	if totalAdded > 0 && totalRemoved == 0 {
		scores["feat"] += 5
	} else if totalRemoved > totalAdded*2 {
		scores["refactor"] += 5
	}

	for _, indicator := range fixIndicators {
		if strings.Contains(fullDiff, indicator) {
			scores["fix"] += 8
			break
		}
	}

	return scores
}

// resolveType picks the strictly highest score; ties go to the category
// declared first. Zero total signal falls back to chore.
func resolveType(scores map[string]int) string {
	best := ""
	bestScore := 0
	for _, c := range categories {
		if s := scores[c.name]; s > bestScore {
			best = c.name
			bestScore = s
		}
	}
	if best == "" {
		return "chore"
	}
	return best
}
