// Package code parses hierarchical account codes like "1.1.01.001".
package code

import (
	"regexp"
	"strings"
)

var codePattern = regexp.MustCompile(`^\d{1,4}(\.\d{1,4})+$`)

// IsCode reports whether s looks like a dot-separated account code with
// at least two integer segments.
func IsCode(s string) bool {
	return codePattern.MatchString(strings.TrimSpace(s))
}

// Segments splits a code into its integer segments.
// "1.1.01.001" -> ["1", "1", "01", "001"]
func Segments(c string) []string {
	c = strings.TrimSpace(c)
	if c == "" {
		return nil
	}
	return strings.Split(c, ".")
}

// Level returns the segment count of a code; zero for an empty code.
func Level(c string) int {
	segs := Segments(c)
	return len(segs)
}

// Leading returns the first n segments rejoined, or the whole code when
// it has fewer than n segments. "1.1.01.001", 2 -> "1.1".
func Leading(c string, n int) string {
	segs := Segments(c)
	if len(segs) > n {
		segs = segs[:n]
	}
	return strings.Join(segs, ".")
}

// HasPrefix reports whether c starts with the given segment prefix on a
// segment boundary: "1.10.2" does not have prefix "1.1".
func HasPrefix(c, prefix string) bool {
	cs := Segments(c)
	ps := Segments(prefix)
	if prefix != "" && len(ps) == 0 {
		ps = []string{strings.TrimSpace(prefix)}
	}
	if len(ps) == 0 || len(cs) < len(ps) {
		return false
	}
	for i := range ps {
		if trimZeros(cs[i]) != trimZeros(ps[i]) {
			return false
		}
	}
	return true
}

// trimZeros drops leading zeros so "01" and "1" compare equal.
func trimZeros(seg string) string {
	t := strings.TrimLeft(seg, "0")
	if t == "" {
		return "0"
	}
	return t
}
