package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// substitutions maps Latin-script letters with diacritics, ligatures and a
// few typographic marks to ASCII. Runes missing from the table are kept.
var substitutions = map[rune]string{
	// a
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'å': "a", 'ā': "a", 'ă': "a", 'ą': "a",
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Å': "A", 'Ā': "A", 'Ă': "A", 'Ą': "A",
	'ä': "ae", 'æ': "ae",
	'Ä': "Ae", 'Æ': "Ae",
	// c, d
	'ç': "c", 'ć': "c", 'ĉ': "c", 'ċ': "c", 'č': "c",
	'Ç': "C", 'Ć': "C", 'Ĉ': "C", 'Ċ': "C", 'Č': "C",
	'ď': "d", 'đ': "d", 'ð': "d",
	'Ď': "D", 'Đ': "D", 'Ð': "D",
	// e
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e", 'ē': "e", 'ĕ': "e", 'ė': "e", 'ę': "e", 'ě': "e",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E", 'Ē': "E", 'Ĕ': "E", 'Ė': "E", 'Ę': "E", 'Ě': "E",
	// g, h
	'ĝ': "g", 'ğ': "g", 'ġ': "g", 'ģ': "g",
	'Ĝ': "G", 'Ğ': "G", 'Ġ': "G", 'Ģ': "G",
	'ĥ': "h", 'ħ': "h",
	'Ĥ': "H", 'Ħ': "H",
	// i, j, k
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i", 'ĩ': "i", 'ī': "i", 'ĭ': "i", 'į': "i", 'ı': "i",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I", 'Ĩ': "I", 'Ī': "I", 'Ĭ': "I", 'Į': "I", 'İ': "I",
	'ĳ': "ij", 'Ĳ': "IJ",
	'ĵ': "j", 'Ĵ': "J",
	'ķ': "k", 'Ķ': "K",
	// l, n
	'ĺ': "l", 'ļ': "l", 'ľ': "l", 'ŀ': "l", 'ł': "l",
	'Ĺ': "L", 'Ļ': "L", 'Ľ': "L", 'Ŀ': "L", 'Ł': "L",
	'ñ': "n", 'ń': "n", 'ņ': "n", 'ň': "n",
	'Ñ': "N", 'Ń': "N", 'Ņ': "N", 'Ň': "N",
	// o
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ø': "o", 'ō': "o", 'ŏ': "o", 'ő': "o",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ø': "O", 'Ō': "O", 'Ŏ': "O", 'Ő': "O",
	'ö': "oe", 'œ': "oe",
	'Ö': "Oe", 'Œ': "Oe",
	// r, s, t
	'ŕ': "r", 'ŗ': "r", 'ř': "r",
	'Ŕ': "R", 'Ŗ': "R", 'Ř': "R",
	'ś': "s", 'ŝ': "s", 'ş': "s", 'š': "s", 'ș': "s",
	'Ś': "S", 'Ŝ': "S", 'Ş': "S", 'Š': "S", 'Ș': "S",
	'ß': "sz", 'ẞ': "SZ",
	'ţ': "t", 'ť': "t", 'ŧ': "t", 'ț': "t",
	'Ţ': "T", 'Ť': "T", 'Ŧ': "T", 'Ț': "T",
	'þ': "th", 'Þ': "Th",
	// u
	'ù': "u", 'ú': "u", 'û': "u", 'ũ': "u", 'ū': "u", 'ŭ': "u", 'ů': "u", 'ű': "u", 'ų': "u",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ũ': "U", 'Ū': "U", 'Ŭ': "U", 'Ů': "U", 'Ű': "U", 'Ų': "U",
	'ü': "ue", 'Ü': "Ue",
	// w, y, z
	'ŵ': "w", 'Ŵ': "W",
	'ý': "y", 'ÿ': "y", 'ŷ': "y",
	'Ý': "Y", 'Ÿ': "Y", 'Ŷ': "Y",
	'ź': "z", 'ż': "z", 'ž': "z",
	'Ź': "Z", 'Ż': "Z", 'Ž': "Z",
	// punctuation
	'‐': "-", '‑': "-", '‒': "-", '–': "-", '—': "-",
	'‘': "'", '’': "'", '‚': "'",
	'“': "\"", '”': "\"", '„': "\"",
	'…': "...",
	'\u00a0': " ",
}

// Transliterate replaces every rune found in the substitution table with its
// ASCII approximation. The input is NFC-composed first so that a base letter
// followed by a combining accent is looked up as one rune.
func Transliterate(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if sub, ok := substitutions[r]; ok {
			b.WriteString(sub)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Substitution returns the table entry for r.
func Substitution(r rune) (string, bool) {
	sub, ok := substitutions[r]
	return sub, ok
}
