package analyzer

import "strings"

// parsedDiff is the parser's full output. The exported ParseDiff returns the
// file records and counts; Analyze also needs the changed-line content for
// keyword scoring.
type parsedDiff struct {
	files          []FileChange
	totalAdded     int
	totalRemoved   int
	changedContent string // lowercased added+removed line content
}

// ParseDiff scans a unified diff and returns the per-file change records in
// order of first appearance, plus the aggregate added/removed line counts.
// Malformed header lines are skipped; a diff with no file headers yields no
// records but still counts lines.
func ParseDiff(diff string) ([]FileChange, int, int) {
	p := parseDiff(diff)
	return p.files, p.totalAdded, p.totalRemoved
}

func parseDiff(diff string) parsedDiff {
	var (
		files   []FileChange
		added   []string
		removed []string
	)

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			parts := strings.Fields(line)
			if len(parts) < 4 {
				continue // malformed header, never fatal
			}
			path := strings.TrimPrefix(parts[2], "a/")
			files = append(files, FileChange{Path: path})

		case strings.HasPrefix(line, "new file mode"):
			if len(files) > 0 {
				files[len(files)-1].IsNew = true
			}

		case strings.HasPrefix(line, "deleted file mode"):
			if len(files) > 0 {
				files[len(files)-1].IsDeleted = true
			}

		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			added = append(added, line[1:])
			if len(files) > 0 {
				files[len(files)-1].Added++
			}

		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			removed = append(removed, line[1:])
			if len(files) > 0 {
				files[len(files)-1].Removed++
			}
		}
	}

	content := strings.ToLower(strings.Join(added, "\n") + " " + strings.Join(removed, "\n"))

	return parsedDiff{
		files:          files,
		totalAdded:     len(added),
		totalRemoved:   len(removed),
		changedContent: content,
	}
}
