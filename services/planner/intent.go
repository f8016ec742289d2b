package planner

import (
	"regexp"
	"strings"
)

// Intent pattern tables. These are deliberately explicit and testable
// rather than folded into the generative call: the tracker's precedence
// rules depend on them being cheap and deterministic.
//
// Known ambiguity: "change" in an unrelated sentence ("change my search to
// hotels") also matches the disruption table, which runs first. That overlap
// is an open product question and is intentionally not guessed around here.
var (
	disruptionPatterns = compile(
		`\bweather\b`,
		`\brain(y|ing|ed)?\b`,
		`\bsnow(y|ing|ed)?\b`,
		`\bstorm(y|s)?\b`,
		`\bcancel(l?ed|lation)?\b`,
		`\bchanged?\b`,
		`\binstead\b`,
		`\bwhat else\b`,
		`\bsomething else\b`,
	)

	newSearchPatterns = compile(
		`\bflights?\b`,
		`\bhotels?\b`,
		`\bcars?\b`,
		`\bfind\b`,
		`\bsearch\b`,
		`\blook for\b`,
		`\bhow about\b`,
	)

	affirmativePatterns = compile(
		`^\s*(yes|sure|ok(ay)?|yeah|yep)\b`,
		`\bwhy not\b`,
		`\bsounds good\b`,
		`\bdo it\b`,
	)
)

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	lower := strings.ToLower(text)
	for _, p := range patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// MatchesDisruption reports whether the turn signals a real-world plan
// change (weather, cancellation, "what else can I do").
func MatchesDisruption(text string) bool {
	return matchAny(disruptionPatterns, text)
}

// MatchesNewSearch reports whether the turn starts a fresh search intent.
func MatchesNewSearch(text string) bool {
	return matchAny(newSearchPatterns, text)
}

// MatchesAffirmative reports whether the turn accepts a pending offer.
func MatchesAffirmative(text string) bool {
	return matchAny(affirmativePatterns, text)
}
