package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Anything outside the path token alphabet.
	disallowed = regexp.MustCompile(`[^-a-z0-9_. ()]`)
	whitespace = regexp.MustCompile(`\s+`)
	// Innermost parenthetical group, including its surrounding spaces.
	parenthetical = regexp.MustCompile(`\s*\([^()]*\)\s*`)
)

// PathToken reduces raw tag text to a token usable as one path segment.
//
// The steps run in this order:
//  1. lower-case (root locale, independent of the environment)
//  2. transliterate with the substitution table
//  3. drop every rune outside [-a-z0-9_. ()]
//  4. trim surrounding whitespace
//  5. replace each internal whitespace run with a single underscore
//
// Lower-casing happens before the table lookup so that "Ä" and "ä" both
// become "ae". An empty result is possible; callers deriving paths must
// reject it for mandatory fields.
//
// Example:
//
//	PathToken("Ångström Café")      // "angstroem_cafe"
//	PathToken("  Sigur Rós  ")      // "sigur_ros"
//	PathToken("Live (2004) / Part") // "live_(2004)_part"
func PathToken(raw string) string {
	s := cases.Lower(language.Und).String(raw)
	s = Transliterate(s)
	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return whitespace.ReplaceAllString(s, "_")
}

// CleanOptions selects the optional steps of CleanValue.
type CleanOptions struct {
	// Transliterate replaces diacritics and ligatures with ASCII.
	Transliterate bool

	// StripParentheses removes parenthetical groups such as "(Remastered)".
	StripParentheses bool
}

// CleanValue tidies a tag value for writing back to a file.
//
// Unlike PathToken it keeps case and punctuation. Parenthetical groups are
// removed before whitespace is collapsed, so "A (x) B" becomes "A B".
//
// Example:
//
//	CleanValue("  Björk ", CleanOptions{Transliterate: true})                   // "Bjoerk"
//	CleanValue("Song (Radio Edit)", CleanOptions{StripParentheses: true})     // "Song"
func CleanValue(raw string, opts CleanOptions) string {
	s := raw
	if opts.Transliterate {
		s = Transliterate(s)
	}
	if opts.StripParentheses {
		for parenthetical.MatchString(s) {
			s = parenthetical.ReplaceAllString(s, " ")
		}
	}
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
