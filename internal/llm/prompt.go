package llm

import (
	"fmt"
	"strings"

	"github.com/autocommit/autocommit-go/internal/analyzer"
)

// styleInstructions maps each output style to the instruction line embedded
// in the system prompt.
var styleInstructions = map[string]string{
	analyzer.StyleConventional: "Use the Conventional Commits format: <type>(<optional-scope>): <description>. Types include: feat, fix, docs, style, refactor, perf, test, build, ci, chore, deps.",
	analyzer.StyleShort:        "Create a brief, single-line commit message that describes the change concisely.",
	analyzer.StyleVerbose:      "Create a detailed commit message with a summary line followed by a blank line and a body explaining what and why.",
}

// SystemPrompt builds the system prompt for the requested style. Unknown
// styles fall back to conventional; style validation happens upstream.
func SystemPrompt(style string) string {
	hint, ok := styleInstructions[style]
	if !ok {
		hint = styleInstructions[analyzer.StyleConventional]
	}

	return fmt.Sprintf(`You are an expert at writing clear, concise git commit messages.

Rules:
1. %s
2. Be specific about what changed
3. Use present tense ("add" not "added")
4. Don't end with a period
5. Keep the summary under 72 characters
6. Only output the commit message, no explanations

Analyze the diff and generate an appropriate commit message.`, hint)
}

// UserPrompt wraps the diff for the model.
func UserPrompt(diff string) string {
	return "Generate a commit message for this diff:\n\n" + diff
}

// CleanResponse strips markdown code fences and surrounding whitespace from
// a model response.
func CleanResponse(message string) string {
	message = strings.TrimSpace(message)
	if strings.HasPrefix(message, "```") {
		lines := strings.Split(message, "\n")
		if len(lines) > 2 {
			message = strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
		}
	}
	return message
}
