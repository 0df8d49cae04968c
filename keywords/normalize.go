package keywords

import (
	"strings"
	"unicode"
)

// isArabicDiacritic reports whether r is an Arabic combining mark
// (vowel marks, shadda, superscript alef and the Quranic annotation range).
func isArabicDiacritic(r rune) bool {
	return (r >= 0x0610 && r <= 0x061A) ||
		(r >= 0x064B && r <= 0x065F) ||
		r == 0x0670 ||
		(r >= 0x06D6 && r <= 0x06ED)
}

// StripArabicDiacritics removes Arabic combining marks so that vocalized and
// unvocalized spellings normalize to the same keyword.
func StripArabicDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isArabicDiacritic(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize produces the canonical form of a keyword: diacritics stripped,
// lower-cased, every rune outside letters/digits/'#'/'-' collapsed to a
// single space, whitespace runs collapsed, trimmed. Two keywords are equal
// iff their normalized forms are byte-equal. Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(StripArabicDiacritics(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '#' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits the normalized form of s on whitespace. Empty input yields
// no tokens; the function never fails.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}

// IsArabic reports whether s contains any code point from the Arabic block.
// Classification is purely string-local.
func IsArabic(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

// IsStopword checks a token against the stopword list matching its script.
// Hashtag tokens are tested on the '#'-stripped form.
func IsStopword(token string) bool {
	t := strings.TrimPrefix(token, "#")
	if IsArabic(t) {
		return arabicStopwords[t]
	}
	return englishStopwords[t]
}
