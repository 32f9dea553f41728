package chronyconf

import "strings"

// Header marks the generated file so nobody edits it expecting the change
// to survive the next boot.
const Header = "# Generated by chrony-cloud-setup. Do not edit."

// Directives superseded by the platform profiles. Disabled with a comment
// marker instead of deleted so a profile can re-enable exactly the ones it
// needs without re-parsing the original file.
var disabledDirectives = []string{"makestep", "pool", "leapsectz"}

// SplitBody turns file content into the line sequence the transform
// functions operate on.
func SplitBody(body string) []string {
	return strings.Split(strings.TrimSuffix(body, "\n"), "\n")
}

// Render joins a line sequence back into file content.
func Render(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// hasDirective reports whether the line starts with the directive keyword
// in column zero, followed by whitespace or end of line.
func hasDirective(line, directive string) bool {
	if !strings.HasPrefix(line, directive) {
		return false
	}
	rest := line[len(directive):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// Transform produces the generated base configuration: every makestep,
// pool and leapsectz directive commented out, a header on top, and an
// unconditional stepping directive at the bottom. The input sequence is
// never mutated.
func Transform(lines []string) []string {
	out := make([]string, 0, len(lines)+3)
	out = append(out, Header)
	for _, line := range lines {
		disabled := line
		for _, directive := range disabledDirectives {
			if hasDirective(line, directive) {
				disabled = "#" + line
				break
			}
		}
		out = append(out, disabled)
	}
	// Threshold 1.0 with limit -1: always step, no matter how large the
	// offset or how long the daemon has been running.
	out = append(out, "", "makestep 1.0 -1")
	return out
}

// Reenable uncomments lines that Transform disabled for the given
// directive, leaving every other line untouched.
func Reenable(lines []string, directive string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "#") && hasDirective(line[1:], directive) {
			line = line[1:]
		}
		out = append(out, line)
	}
	return out
}
