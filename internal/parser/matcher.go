package parser

import "regexp"

// MatchResult is either a match with its named captures, or the zero value for no match.
// MatchResult 要么是带有命名捕获的匹配结果，要么是表示不匹配的零值。
type MatchResult struct {
	Matched  bool
	Captures map[string]string
}

// NoMatch is the result for a line the pattern does not match.
var NoMatch = MatchResult{}

// Matcher holds the compiled pattern.
type Matcher struct {
	re *regexp.Regexp
}

// Match runs the pattern against one line. Only named groups that took part in
// the match appear in Captures; an optional group that did not participate is absent.
// Match 对一行执行模式匹配。只有参与匹配的命名分组才会出现在 Captures 中。
func (m *Matcher) Match(line string) MatchResult {
	loc := m.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return NoMatch
	}

	captures := make(map[string]string)
	for i, name := range m.re.SubexpNames() {
		if name == "" {
			continue
		}
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		// first participating group wins for duplicated names
		if _, seen := captures[name]; seen {
			continue
		}
		captures[name] = line[start:end]
	}
	return MatchResult{Matched: true, Captures: captures}
}

// Pattern returns the source text of the compiled pattern.
func (m *Matcher) Pattern() string {
	return m.re.String()
}
