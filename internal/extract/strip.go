package extract

import "strings"

// StripTags deletes every span from a '<' through the next '>' and collapses
// whitespace runs to single spaces. A '<' with no closing '>' removes the rest
// of the string, and any stray '>' is dropped, so the result never contains
// angle brackets. StripTags(StripTags(s)) == StripTags(s).
func StripTags(s string) string {
	for {
		open := strings.IndexByte(s, '<')
		if open < 0 {
			break
		}
		end := strings.IndexByte(s[open:], '>')
		if end < 0 {
			s = s[:open]
			break
		}
		s = s[:open] + s[open+end+1:]
	}
	s = strings.ReplaceAll(s, ">", "")
	return strings.Join(strings.Fields(s), " ")
}
