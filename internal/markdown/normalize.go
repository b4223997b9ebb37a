package markdown

import (
	"regexp"
	"strings"
)

// listMarkerPattern matches ordered and unordered list item openers in the
// first three columns of a line.
var listMarkerPattern = regexp.MustCompile(`^ {0,3}(?:[-+*]|\d{1,9}[.)])(?:[ \t]+\S|[ \t]*$)`)

// normalizeLists inserts a blank line before a list item that directly
// follows a non-list text line, so that lists starting after a single line
// terminator still form lists. Fenced code blocks are left untouched.
func normalizeLists(source string) string {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	inFence := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if !inFence && i > 0 && listMarkerPattern.MatchString(line) {
			prev := lines[i-1]
			if strings.TrimSpace(prev) != "" && !listMarkerPattern.MatchString(prev) {
				out = append(out, "")
			}
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// normalizeLineEndings rewrites CRLF and lone CR terminators to LF.
func normalizeLineEndings(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.ReplaceAll(source, "\r", "\n")
}
