package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint computes a normalized hash of a diff for cache lookup. Lines
// that vary between otherwise identical changes (index lines, hunk headers)
// are dropped, the rest is whitespace-trimmed and sorted so hunk ordering
// does not affect the key.
func Fingerprint(diff string) string {
	var lines []string
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "index ") || strings.HasPrefix(line, "@@") {
			continue
		}
		stripped := strings.TrimSpace(line)
		if stripped != "" {
			lines = append(lines, stripped)
		}
	}
	sort.Strings(lines)

	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])[:16]
}
