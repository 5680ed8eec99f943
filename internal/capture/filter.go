package capture

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Class int

const (
	ClassSignal Class = iota
	ClassNoise
)

const DefaultMinFragmentLen = 5

// Conferencing-UI chrome that leaks into scraped caption nodes. Any match
// discards the fragment entirely.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^turn (on|off) captions?$`),
	regexp.MustCompile(`(?i)^captions? (are )?(on|off|unavailable)$`),
	regexp.MustCompile(`(?i)\b(font (size|family)|text colou?r|background colou?r|caption settings)\b`),
	regexp.MustCompile(`(?i)^caption language$`),
	regexp.MustCompile(`(?i)^(english|spanish|french|german|portuguese|hindi|japanese|korean|chinese)( \([^)]*\))?$`),
	regexp.MustCompile(`(?i)^(jump to bottom|settings|more options|leave call|meeting details|you're presenting)$`),
	regexp.MustCompile(`(?i)\b(arrow_downward|expand_(more|less)|more_vert|mic_(on|off))\b`),
	regexp.MustCompile(`^[\p{Zs}\p{P}\p{S}\p{N}]*$`),
}

// Filter classifies raw caption fragments as signal or UI noise. Pure
// predicate, no side effects.
type Filter struct {
	minLen int
}

func NewFilter(minLen int) *Filter {
	if minLen <= 0 {
		minLen = DefaultMinFragmentLen
	}
	return &Filter{minLen: minLen}
}

func (f *Filter) Classify(fragment string) Class {
	trimmed := strings.TrimSpace(fragment)
	if utf8.RuneCountInString(trimmed) < f.minLen {
		return ClassNoise
	}
	for _, p := range noisePatterns {
		if p.MatchString(trimmed) {
			return ClassNoise
		}
	}
	return ClassSignal
}
