package analyzer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readmeDiff = `diff --git a/README.md b/README.md
index 123..456
--- a/README.md
+++ b/README.md
@@ -1,2 +1,5 @@
 # Project
+
+## Usage
+Run the tool against a repository.`

const newMathDiff = `diff --git a/src/utils/math.py b/src/utils/math.py
new file mode 100644
index 000..456
--- /dev/null
+++ b/src/utils/math.py
@@ -0,0 +1,3 @@
+def add(a, b):
+    return a + b
+`

const twoTestFilesDiff = `diff --git a/tests/test_parser.py b/tests/test_parser.py
index 111..222
--- a/tests/test_parser.py
+++ b/tests/test_parser.py
@@ -1,1 +1,3 @@
 import parser
+def test_parse():
+    assert parser.parse("x")
diff --git a/tests/test_writer.py b/tests/test_writer.py
index 333..444
--- a/tests/test_writer.py
+++ b/tests/test_writer.py
@@ -1,1 +1,3 @@
 import writer
+def test_write():
+    assert writer.write("y")`

const fixHandlerDiff = `diff --git a/handler.go b/handler.go
index 123..456
--- a/handler.go
+++ b/handler.go
@@ -10,1 +10,1 @@
-	return nil
+	return err // fix nil return`

func TestScenarioDocsReadme(t *testing.T) {
	a := Analyze(readmeDiff)
	assert.Equal(t, "docs", a.Type)
	assert.Contains(t, a.Summary, "documentation")
}

func TestScenarioNewUtilityFile(t *testing.T) {
	a := Analyze(newMathDiff)
	assert.Equal(t, "feat", a.Type)
	assert.Equal(t, "math", a.Scope)
	assert.Zero(t, a.TotalRemoved)

	msg, err := Render(newMathDiff, StyleConventional)
	require.NoError(t, err)
	assert.Equal(t, "feat(math): add math", msg)
}

func TestScenarioTwoTestModules(t *testing.T) {
	a := Analyze(twoTestFilesDiff)
	assert.Equal(t, "test", a.Type)
	assert.Equal(t, "tests", a.Scope)
	assert.Equal(t, "add tests for 2 modules", a.Summary)
}

func TestScenarioFixInHandler(t *testing.T) {
	a := Analyze(fixHandlerDiff)
	assert.Equal(t, "fix", a.Type)
	assert.Equal(t, "fix issue in handler", a.Summary)
}

func TestScenarioEmptyDiff(t *testing.T) {
	a := Analyze("")
	assert.Equal(t, "chore", a.Type)
	assert.Empty(t, a.Scope)
	assert.Equal(t, "update code", a.Summary)
	assert.Empty(t, a.Files)
}

func TestRenderDeterminism(t *testing.T) {
	diffs := []string{"", readmeDiff, newMathDiff, twoTestFilesDiff, fixHandlerDiff}
	for _, diff := range diffs {
		for _, style := range Styles() {
			first, err := Render(diff, style)
			require.NoError(t, err)
			second, err := Render(diff, style)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		}
	}
}

func TestRenderTotality(t *testing.T) {
	diffs := []string{"", "not a diff", readmeDiff, newMathDiff, "+++ --- @@ garbage"}
	for _, diff := range diffs {
		for _, style := range Styles() {
			msg, err := Render(diff, style)
			require.NoError(t, err)
			assert.NotEmpty(t, msg)
		}
	}
}

func TestRenderUnknownStyle(t *testing.T) {
	_, err := Render(readmeDiff, "haiku")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStyle))
}

func TestRenderStyles(t *testing.T) {
	conv, err := Render(fixHandlerDiff, StyleConventional)
	require.NoError(t, err)
	assert.Equal(t, "fix(handler): fix issue in handler", conv)

	short, err := Render(fixHandlerDiff, StyleShort)
	require.NoError(t, err)
	assert.Equal(t, "fix issue in handler in handler", short)

	verbose, err := Render(fixHandlerDiff, StyleVerbose)
	require.NoError(t, err)
	parts := strings.SplitN(verbose, "\n\n", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, conv, parts[0])
	assert.Contains(t, parts[1], "handler.go (+1, -1)")
}

func TestRenderShortWithoutScope(t *testing.T) {
	msg, err := Render("", StyleShort)
	require.NoError(t, err)
	assert.Equal(t, "update code", msg)
}

func TestVerboseBodyCapsAtFiveFiles(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&sb, "diff --git a/pkg/f%d.go b/pkg/f%d.go\nindex 1..2\n--- a/pkg/f%d.go\n+++ b/pkg/f%d.go\n+line\n", i, i, i, i)
	}

	msg, err := Render(sb.String(), StyleVerbose)
	require.NoError(t, err)
	assert.Contains(t, msg, "... and 2 more files")
	assert.Equal(t, maxBodyFiles, strings.Count(msg, "  * "))
}

func TestVerboseBodyMarksNewAndDeleted(t *testing.T) {
	diff := `diff --git a/born.go b/born.go
new file mode 100644
+package born
diff --git a/gone.go b/gone.go
deleted file mode 100644
-package gone`

	msg, err := Render(diff, StyleVerbose)
	require.NoError(t, err)
	assert.Contains(t, msg, "+ born.go (new)")
	assert.Contains(t, msg, "- gone.go (deleted)")
}

func TestBuildSummaryIsTotal(t *testing.T) {
	fileSets := [][]FileChange{
		nil,
		{{Path: "a.go", Added: 1}},
		{{Path: "a.go", Removed: 1}},
		{{Path: "a.go", Added: 2, Removed: 2}, {Path: "b.go"}},
		{{Path: "a.go", IsNew: true, Added: 1}},
		{{Path: "a.go", IsDeleted: true, Removed: 1}},
	}
	for _, commitType := range CommitTypes() {
		for _, files := range fileSets {
			added, removed := 0, 0
			for _, f := range files {
				added += f.Added
				removed += f.Removed
			}
			summary := buildSummary(commitType, InferScope(files), files, added, removed)
			assert.NotEmpty(t, summary, "type=%s files=%d", commitType, len(files))
		}
	}
}

func TestBuildSummaryStripsTestTokens(t *testing.T) {
	files := []FileChange{{Path: "test_parser.py", Added: 3}}
	summary := buildSummary("test", InferScope(files), files, 3, 0)
	assert.Equal(t, "add tests for parser", summary)
}
