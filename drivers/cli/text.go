package cli

import "regexp"

// ansiRegex matches ANSI escape sequences (colors, cursor movement, etc.)
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// pagerRegex matches the "--More--" marker some firmware prints even
// after the pager is disabled, with the backspaces that erase it.
var pagerRegex = regexp.MustCompile(`\s*--More--[\x08 ]*`)

// StripANSI removes ANSI escape codes and pager markers from CLI output.
func StripANSI(s string) string {
	return pagerRegex.ReplaceAllString(ansiRegex.ReplaceAllString(s, ""), "\n")
}
