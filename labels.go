package conjug

import (
	"fmt"
	"strings"
)

// SubjectFormat selects how person labels are rendered.
type SubjectFormat string

const (
	// Abbreviation renders labels as "1s", "2s", … "3p".
	Abbreviation SubjectFormat = "abbrev"
	// Pronoun renders labels as subject pronouns ("je", "tu", …).
	Pronoun SubjectFormat = "pronoun"
)

// ParseSubjectFormat accepts "abbrev", "abbreviation", "pronoun" or "".
// The empty string selects Abbreviation.
func ParseSubjectFormat(s string) (SubjectFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abbrev", "abbreviation":
		return Abbreviation, nil
	case "pronoun", "pronouns":
		return Pronoun, nil
	default:
		return "", fmt.Errorf("unknown subject format %q", s)
	}
}

// labelSet holds one label per slot position for both subject formats.
type labelSet struct {
	abbrev  []string
	pronoun []string
}

func (ls *labelSet) at(sf SubjectFormat, i int) (string, bool) {
	if ls == nil {
		return "", false
	}
	set := ls.abbrev
	if sf == Pronoun {
		set = ls.pronoun
	}
	if i < 0 || i >= len(set) {
		return "", false
	}
	return set[i], true
}

// canonicalAbbrevs are the six canonical persons.
var canonicalAbbrevs = []string{"1s", "2s", "3s", "1p", "2p", "3p"}

var personLabels = map[Language]*labelSet{
	French: {
		abbrev:  canonicalAbbrevs,
		pronoun: []string{"je", "tu", "il (elle, on)", "nous", "vous", "ils (elles)"},
	},
	Italian: {
		abbrev:  canonicalAbbrevs,
		pronoun: []string{"io", "tu", "egli/ella", "noi", "voi", "essi/esse"},
	},
	Spanish: {
		abbrev:  canonicalAbbrevs,
		pronoun: []string{"yo", "tú", "él", "nosotros", "vosotros", "ellos"},
	},
	English: {
		abbrev:  canonicalAbbrevs,
		pronoun: []string{"I", "you", "he/she/it", "you", "we", "they"},
	},
	Portuguese: {
		abbrev:  canonicalAbbrevs,
		pronoun: []string{"eu", "tu", "ele", "nós", "vós", "eles"},
	},
	Romanian: {
		abbrev:  canonicalAbbrevs,
		pronoun: []string{"eu", "tu", "el/ea", "noi", "voi", "ei/ele"},
	},
}

// imperativeLabels covers the reduced person set of the imperative.
// Italian and Portuguese have no table: they label imperatives with the
// canonical abbreviations.
var imperativeLabels = map[Language]*labelSet{
	French: {
		abbrev:  []string{"2s", "1p", "2p"},
		pronoun: []string{"", "", ""},
	},
	Spanish: {
		abbrev:  []string{"2s", "3s", "1p", "2p", "3p"},
		pronoun: []string{"tú", "él", "nosotros", "vosotros", "ellos"},
	},
	English: {
		abbrev:  []string{"2s", "1p", "2p"},
		pronoun: []string{"", "let's", ""},
	},
	Romanian: {
		abbrev:  []string{"2s", "2p"},
		pronoun: []string{"tu", "voi"},
	},
}

// genderLabels label past participles that agree in gender and number.
var genderLabels = map[Language]*labelSet{
	French: {
		abbrev:  []string{"ms", "mp", "fs", "fp"},
		pronoun: []string{"masculin singulier", "masculin pluriel", "feminin singulier", "feminin pluriel"},
	},
}

// negationWords are prepended to negative imperatives.
var negationWords = map[Language]string{
	French:     "ne",
	Italian:    "non",
	Spanish:    "no",
	English:    "don't",
	Portuguese: "não",
	Romanian:   "nu",
}

// PersonLabel returns the canonical label of person index i (0..5) in
// lang under sf, e.g. PersonLabel(French, Pronoun, 0) == "je".
func PersonLabel(lang Language, sf SubjectFormat, i int) (string, bool) {
	return personLabels[lang].at(sf, i)
}

// NegationWord returns the negation particle of lang.
func NegationWord(lang Language) string {
	return negationWords[lang]
}
