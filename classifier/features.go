package classifier

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NgramRange bounds the length of the ending and beginning n-grams.
type NgramRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultNgramRange is the range used by the stock models.
var DefaultNgramRange = NgramRange{Min: 2, Max: 7}

type alphabet struct {
	vowels     map[rune]struct{}
	consonants map[rune]struct{}
}

func newAlphabet(vowels, consonants string) alphabet {
	a := alphabet{vowels: make(map[rune]struct{}), consonants: make(map[rune]struct{})}
	for _, r := range vowels {
		a.vowels[r] = struct{}{}
	}
	for _, r := range consonants {
		a.consonants[r] = struct{}{}
	}
	return a
}

// fallbackAlphabet is the plain-ASCII alphabet for unknown languages.
const fallbackAlphabet = "en"

var alphabets = map[string]alphabet{
	"fr": newAlphabet("aáàâeêéèiîïoôöœuûùy", "bcçdfghjklmnpqrstvwxyz"),
	"en": newAlphabet("aeiouy", "bcdfghjklmnpqrstvwxyz"),
	"es": newAlphabet("aáeiíoóuúy", "bcdfghjklmnñpqrstvwxyz"),
	"it": newAlphabet("aàeéèiìîoóòuùy", "bcdfghjklmnpqrstvwxyz"),
	"pt": newAlphabet("aàãáâeêéiíoóõôuúy", "bcçdfghjklmnpqrstvwxyz"),
	"ro": newAlphabet("aăâeiîouy", "bcdfghjklmnpqrsșştțţvwxyz"),
}

var multiSpace = regexp.MustCompile(`\s\s+`)

// ExtractFeatures maps word to its ordered feature tokens:
// END=<suffix> for each n in r, START=<prefix> for each n in r, then
// LEN=, VOW_NUM=, CONS_NUM= and V/C= (vowel/consonant ratio rounded to two
// decimals, "N/A" without consonants). n-grams longer than the word are
// skipped. The result depends only on its arguments.
func ExtractFeatures(word, lang string, r NgramRange) []string {
	word = strings.ToLower(multiSpace.ReplaceAllString(word, " "))
	runes := []rune(word)
	n := len(runes)

	hi := r.Max
	if hi > n {
		hi = n
	}
	lo := r.Min
	if lo < 1 {
		lo = 1
	}

	feats := make([]string, 0, 2*max(hi-lo+1, 0)+4)
	for k := lo; k <= hi; k++ {
		feats = append(feats, "END="+string(runes[n-k:]))
	}
	for k := lo; k <= hi; k++ {
		feats = append(feats, "START="+string(runes[:k]))
	}

	alpha, ok := alphabets[lang]
	if !ok {
		alpha = alphabets[fallbackAlphabet]
	}
	vowels, consonants := 0, 0
	for _, c := range runes {
		if _, ok := alpha.vowels[c]; ok {
			vowels++
		}
		if _, ok := alpha.consonants[c]; ok {
			consonants++
		}
	}

	ratio := "N/A"
	if consonants > 0 {
		ratio = formatRatio(float64(vowels) / float64(consonants))
	}
	return append(feats,
		"LEN="+strconv.Itoa(n),
		"VOW_NUM="+strconv.Itoa(vowels),
		"CONS_NUM="+strconv.Itoa(consonants),
		"V/C="+ratio,
	)
}

// formatRatio rounds to two decimals and always keeps a fractional part,
// e.g. 1 → "1.0", 2/3 → "0.67".
func formatRatio(x float64) string {
	s := strconv.FormatFloat(math.Round(x*100)/100, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
