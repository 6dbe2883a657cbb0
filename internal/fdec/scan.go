// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fdec

import "regexp"

// signaturePattern matches a line that starts with a word character, up to
// and including the first ")" on that line. The dot does not match a
// newline, so a match never spans lines. It also matches statements such
// as "if (x)" or "while (y)" when they start a line; callers accept that.
var signaturePattern = regexp.MustCompile(`(?m)^\w+.*?\)`)

// Scan returns every candidate signature in src in source order.
func Scan(src string) []string {
	return signaturePattern.FindAllString(src, -1)
}

// DropEntryPoint removes the last candidate, which is assumed to be the
// program entry point (main) and must not be forward declared. It returns
// nil for an empty list.
func DropEntryPoint(matches []string) []string {
	if len(matches) == 0 {
		return nil
	}
	return matches[:len(matches)-1]
}

// Dedupe returns items with repeated values removed, keeping the first
// occurrence of each value in its original position.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Extract runs the scan, entry-point filter and dedupe steps on src and
// returns the declaration list.
func Extract(src string) []string {
	return Dedupe(DropEntryPoint(Scan(src)))
}
