// Package textnorm canonicalizes raw document text into trimmed, single-spaced lines.
package textnorm

import "strings"

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n", "\f", "\n", "\v", "\n")

// Lines unifies line endings, splits on them, collapses whitespace runs within
// each line and drops lines that end up empty.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(lineEndings.Replace(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = Collapse(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Collapse replaces every run of whitespace (newlines and non-breaking spaces
// included) with a single space and trims the result.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Key is the comparison form of s: collapsed and lowercased.
func Key(s string) string {
	return strings.ToLower(Collapse(s))
}
