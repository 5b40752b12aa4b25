package lint

import (
	"regexp"

	"github.com/yaklabco/lc3kit/pkg/config"
)

// Structural patterns for the supported identifier case styles. A bare
// lowercase word with no separator matches both the snake and lowerCamel
// patterns; classification picks snake first and Satisfies covers the
// overlap.
var (
	snakeCasePattern          = regexp.MustCompile(`^[a-z]+(?:_[a-z0-9]+)*$`)
	screamingSnakeCasePattern = regexp.MustCompile(`^[A-Z0-9]+(?:_[A-Z0-9]+)*$`)
	lowerCamelCasePattern     = regexp.MustCompile(`^[a-z]+(?:[A-Z][a-z0-9]*)*$`)
	upperCamelCasePattern     = regexp.MustCompile(`^[A-Z][a-z0-9]*(?:[A-Z][a-z0-9]*)*$`)
)

// Classify determines the case style of word. The empty style is returned
// when no pattern matches.
func Classify(word string) config.CaseStyle {
	switch {
	case snakeCasePattern.MatchString(word):
		return config.SnakeCase
	case screamingSnakeCasePattern.MatchString(word):
		return config.ScreamingSnakeCase
	case lowerCamelCasePattern.MatchString(word):
		return config.LowerCamelCase
	case upperCamelCasePattern.MatchString(word):
		return config.UpperCamelCase
	default:
		return ""
	}
}

// Satisfies reports whether word matches the required style's pattern
// directly. The patterns overlap, so a word whose classification differs
// from want can still satisfy it: a bare lowercase word is valid as both
// snake_case and lowerCamelCase, and an all-caps word is valid as both
// SCREAMING_SNAKE_CASE and UpperCamelCase.
func Satisfies(word string, want config.CaseStyle) bool {
	pattern := patternFor(want)
	return pattern != nil && pattern.MatchString(word)
}

func patternFor(style config.CaseStyle) *regexp.Regexp {
	switch style {
	case config.SnakeCase:
		return snakeCasePattern
	case config.ScreamingSnakeCase:
		return screamingSnakeCasePattern
	case config.LowerCamelCase:
		return lowerCamelCasePattern
	case config.UpperCamelCase:
		return upperCamelCasePattern
	default:
		return nil
	}
}
