package domain

import "strings"

// ParseURLList turns newline separated text into entries. Blank lines are
// skipped, surrounding whitespace trimmed and repeated URLs dropped after
// their first occurrence. Lines are not validated here.
func ParseURLList(text string, d Defaults) []Entry {
	var out []Entry
	seen := make(map[string]bool)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, d.Apply(Entry{Loc: line}))
	}
	return out
}
