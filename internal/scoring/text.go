package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordCount trims the text, splits it on whitespace runs and counts the
// non-empty tokens. Every metric that depends on length uses this count.
func WordCount(text string) int {
	return len(strings.FieldsFunc(text, isSpace))
}

func words(text string) []string {
	return strings.FieldsFunc(text, isSpace)
}

// isSpace mirrors the \s class of the browser regex engine the heuristics were
// tuned against: unicode spaces plus BOM, without NEL.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// TrimText strips leading and trailing whitespace as isSpace defines it.
func TrimText(text string) string {
	return strings.TrimFunc(text, isSpace)
}

// lowerText applies full Unicode lower-casing, so "İ" becomes "i̇" and no
// longer reads as a plain "i". Casers keep state, hence one per call.
func lowerText(text string) string {
	return cases.Lower(language.Und).String(text)
}

// anyButLineEnd stands in for "." in patterns: it stops at \r and the
// unicode line and paragraph separators as well as \n.
const anyButLineEnd = `[^\n\r\x{2028}\x{2029}]`

// foldASCII compiles a case-insensitive pattern in which only ASCII letters
// fold. (?i) would also let "ſ" match "s" and the Kelvin sign match "k".
func foldASCII(pattern string) *regexp.Regexp {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		case isASCIILetter(c):
			lo := lowerASCII(c)
			up := lo - ('a' - 'A')
			if inClass {
				b.WriteByte(lo)
				b.WriteByte(up)
			} else {
				b.WriteByte('[')
				b.WriteByte(lo)
				b.WriteByte(up)
				b.WriteByte(']')
			}
		default:
			b.WriteByte(c)
		}
	}
	return regexp.MustCompile(b.String())
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(score float64, lo, hi int) int {
	v := roundHalfUp(score)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// countContained counts how many of the terms occur as substrings of text.
// Each term counts at most once.
func countContained(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}

func containsAny(text string, terms ...string) bool {
	return countContained(text, terms) > 0
}

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

// countSegments returns the number of pieces re.Split produces. An empty text
// is one segment.
func countSegments(re *regexp.Regexp, text string) int {
	return len(re.Split(text, -1))
}

// TextLength counts UTF-16 code units, the unit the UI measured length in.
func TextLength(text string) int {
	n := 0
	for _, r := range text {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || isASCIILetter(b)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// countAlliterations counts non-overlapping pairs of adjacent words that start
// with the same ASCII letter, case-insensitively. The scan resumes after the
// second word of each pair, so "big bold bright" counts once.
func countAlliterations(text string) int {
	count := 0
	i := 0
	for i < len(text) {
		if !isASCIILetter(text[i]) || (i > 0 && isWordByte(text[i-1])) {
			i++
			continue
		}
		first := lowerASCII(text[i])
		j := i + 1
		for j < len(text) && isWordByte(text[j]) {
			j++
		}
		k := j
		for k < len(text) {
			r, size := utf8.DecodeRuneInString(text[k:])
			if !isSpace(r) {
				break
			}
			k += size
		}
		if k == j || k >= len(text) || !isASCIILetter(text[k]) || lowerASCII(text[k]) != first {
			i = j
			continue
		}
		k++
		for k < len(text) && isWordByte(text[k]) {
			k++
		}
		count++
		i = k
	}
	return count
}
