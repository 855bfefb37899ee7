// Package analyzer turns a staged git diff into a commit message without
// calling any external API. It parses the diff into per-file change records,
// scores a fixed set of commit-type categories against file paths and changed
// content, infers a scope from the touched paths, and renders the result in
// one of three styles.
//
// The whole pipeline is pure: identical diff text and style always produce
// identical output, and no state survives between calls.
package analyzer

// FileChange records what the diff did to a single file.
type FileChange struct {
	Path      string // as it appears in the diff, a/ prefix stripped
	Added     int
	Removed   int
	IsNew     bool
	IsDeleted bool
}

// DiffAnalysis is the combined output of parsing, classification, scope
// inference and summary synthesis for one diff.
type DiffAnalysis struct {
	Files        []FileChange // order of first appearance in the diff
	TotalAdded   int
	TotalRemoved int
	Type         string // one of the fixed commit-type tags
	Scope        string // sanitized, possibly empty
	Summary      string
}
