package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiff(t *testing.T) {
	tests := []struct {
		name        string
		diff        string
		wantFiles   int
		wantAdded   int
		wantRemoved int
	}{
		{
			name: "empty diff",
			diff: "",
		},
		{
			name: "whitespace only",
			diff: "   \n\n  ",
		},
		{
			name: "single file addition",
			diff: `diff --git a/file.txt b/file.txt
index 123..456
--- a/file.txt
+++ b/file.txt
@@ -1,3 +1,4 @@
 line 1
 line 2
+line 3
 line 4`,
			wantFiles: 1,
			wantAdded: 1,
		},
		{
			name: "mixed changes across two files",
			diff: `diff --git a/a.py b/a.py
index 123..456
--- a/a.py
+++ b/a.py
@@ -1,2 +1,2 @@
-old line
+new line
diff --git a/b.py b/b.py
index 789..abc
--- a/b.py
+++ b/b.py
@@ -1,1 +1,2 @@
+another line
 context`,
			wantFiles:   2,
			wantAdded:   2,
			wantRemoved: 1,
		},
		{
			name:      "counted lines without a file header",
			diff:      "+orphan added line\n-orphan removed line",
			wantFiles: 0,
			// counts still accumulate globally
			wantAdded:   1,
			wantRemoved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, added, removed := ParseDiff(tt.diff)
			assert.Len(t, files, tt.wantFiles)
			assert.Equal(t, tt.wantAdded, added)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestParseDiffStripsPathPrefix(t *testing.T) {
	diff := `diff --git a/src/handler.go b/src/handler.go
index 123..456
--- a/src/handler.go
+++ b/src/handler.go
@@ -1,1 +1,2 @@
+added`

	files, _, _ := ParseDiff(diff)
	require.Len(t, files, 1)
	assert.Equal(t, "src/handler.go", files[0].Path)
}

func TestParseDiffNewAndDeletedModes(t *testing.T) {
	diff := `diff --git a/new.go b/new.go
new file mode 100644
index 000..456
--- /dev/null
+++ b/new.go
@@ -0,0 +1,1 @@
+package main
diff --git a/gone.go b/gone.go
deleted file mode 100644
index 456..000
--- a/gone.go
+++ /dev/null
@@ -1,1 +0,0 @@
-package main`

	files, added, removed := ParseDiff(diff)
	require.Len(t, files, 2)

	assert.True(t, files[0].IsNew)
	assert.False(t, files[0].IsDeleted)
	assert.Equal(t, 1, files[0].Added)

	assert.True(t, files[1].IsDeleted)
	assert.False(t, files[1].IsNew)
	assert.Equal(t, 1, files[1].Removed)

	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestParseDiffSkipsMalformedHeader(t *testing.T) {
	// Header with fewer than four tokens must be skipped, not fatal.
	diff := "diff --git broken\n+still counted"

	files, added, _ := ParseDiff(diff)
	assert.Empty(t, files)
	assert.Equal(t, 1, added)
}

func TestParseDiffIgnoresFileMarkers(t *testing.T) {
	diff := `diff --git a/x.go b/x.go
index 123..456
--- a/x.go
+++ b/x.go
@@ -1,1 +1,1 @@
-old
+new`

	files, added, removed := ParseDiff(diff)
	require.Len(t, files, 1)
	// the ---/+++ markers are not change lines
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}
