package conjug

import (
	"fmt"
	"strconv"
	"strings"
)

// languageRules holds the per-language synthesis policy. Each supported
// language registers one implementation in synthRegistry.
type languageRules interface {
	// personLabel returns the label of slot within a tense of n slots.
	// keep=false drops the slot from the output entirely.
	personLabel(tense string, n int, slot PersonSlot, sf SubjectFormat) (label string, keep bool)
	// personForm returns the surface form of slot, or nil for "no form".
	personForm(tense, root string, slot PersonSlot) *string
	// invariantForm returns the surface form of an invariant tense.
	invariantForm(tense, root, suffix string) string
	// emptyForm returns the form of a tense declared without data, or nil.
	emptyForm(tense string, v VerbEntry) *string
}

var synthRegistry = map[Language]languageRules{
	French:     frenchRules{baseRules{French}},
	English:    englishRules{baseRules{English}},
	Spanish:    spanishRules{baseRules{Spanish}},
	Italian:    negatedFormRules{baseRules: baseRules{Italian}, negativeTense: "Imperativo non"},
	Portuguese: negatedFormRules{baseRules: baseRules{Portuguese}, negativeTense: "Imperativo Negativo"},
	Romanian:   romanianRules{baseRules{Romanian}},
}

// Synthesize expands t for verb v into a full conjugation table. It never
// modifies t and keeps the template's mood and tense order.
func Synthesize(lang Language, v VerbEntry, t *Template, sf SubjectFormat) (*Table, error) {
	rules, ok := synthRegistry[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(lang))
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, v.TemplateKey)
	}
	if sf == "" {
		sf = Abbreviation
	}

	table := &Table{Moods: make([]MoodForms, 0, len(t.Moods))}
	for _, m := range t.Moods {
		mf := MoodForms{Name: m.Name, Tenses: make([]TenseForms, 0, len(m.Tenses))}
		for _, tn := range m.Tenses {
			mf.Tenses = append(mf.Tenses, synthesizeTense(rules, v, tn, sf))
		}
		table.Moods = append(table.Moods, mf)
	}
	return table, nil
}

func synthesizeTense(rules languageRules, v VerbEntry, tn Tense, sf SubjectFormat) TenseForms {
	tf := TenseForms{Name: tn.Name}
	switch tn.Entry.Kind {
	case EntryEmpty:
		tf.Form = rules.emptyForm(tn.Name, v)
	case EntryInvariant:
		form := rules.invariantForm(tn.Name, v.Root, tn.Entry.Suffix)
		tf.Form = &form
	case EntryPersons:
		tf.Personal = true
		n := len(tn.Entry.Persons)
		tf.Persons = make([]PersonForm, 0, n)
		for _, slot := range tn.Entry.Persons {
			label, keep := rules.personLabel(tn.Name, n, slot, sf)
			if !keep {
				continue
			}
			tf.Persons = append(tf.Persons, PersonForm{
				Label: label,
				Form:  rules.personForm(tn.Name, v.Root, slot),
			})
		}
	}
	return tf
}

// tenseIs compares tense names case-insensitively against the names used
// by the JSON data and by the Verbiste XML data.
func tenseIs(name string, candidates ...string) bool {
	for _, c := range candidates {
		if strings.EqualFold(name, c) {
			return true
		}
	}
	return false
}

func tenseHasPrefix(name, prefix string) bool {
	return len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix)
}

// baseRules carries the behaviour shared by most languages.
type baseRules struct {
	lang Language
}

// pronoun returns the canonical person label, or the raw index when the
// index is outside the canonical six.
func (b baseRules) pronoun(sf SubjectFormat, i int) string {
	if l, ok := personLabels[b.lang].at(sf, i); ok {
		return l
	}
	return strconv.Itoa(i)
}

func (b baseRules) imperative(sf SubjectFormat, i int) string {
	if l, ok := imperativeLabels[b.lang].at(sf, i); ok {
		return l
	}
	return b.pronoun(Abbreviation, i)
}

func (baseRules) personForm(_, root string, slot PersonSlot) *string {
	if slot.Absent {
		return nil
	}
	f := root + slot.Suffix
	return &f
}

// noFormMarker is the suffix Spanish, Italian, Portuguese and Romanian data
// use for a person that has no form.
const noFormMarker = "-"

// markedPersonForm is personForm for the languages that honour
// noFormMarker.
func (b baseRules) markedPersonForm(tense, root string, slot PersonSlot) *string {
	if slot.Suffix == noFormMarker {
		return nil
	}
	return b.personForm(tense, root, slot)
}

func (baseRules) invariantForm(_, root, suffix string) string {
	return root + suffix
}

func (baseRules) emptyForm(string, VerbEntry) *string {
	return nil
}

func prefixed(word, form string) *string {
	f := word + " " + form
	return &f
}

// ---- French ---------------------------------------------------------------

type frenchRules struct{ baseRules }

func (r frenchRules) personLabel(tense string, n int, slot PersonSlot, sf SubjectFormat) (string, bool) {
	switch {
	case n == len(canonicalAbbrevs):
		return r.pronoun(sf, slot.Index), true
	case tenseIs(tense, "Participe Passé", "past participle"):
		if l, ok := genderLabels[French].at(sf, slot.Index); ok {
			return l, true
		}
		return strconv.Itoa(slot.Index), true
	case tenseIs(tense, "Imperatif Présent", "imperative present"):
		return r.imperative(sf, slot.Index), true
	default:
		return strconv.Itoa(slot.Index), true
	}
}

// ---- English --------------------------------------------------------------

type englishRules struct{ baseRules }

// infinitiveParticle precedes English infinitives.
const infinitiveParticle = "to"

func (r englishRules) personLabel(tense string, n int, slot PersonSlot, sf SubjectFormat) (string, bool) {
	switch {
	case n == len(canonicalAbbrevs):
		return r.pronoun(sf, slot.Index), true
	case tenseIs(tense, "imperative present"):
		return r.imperative(sf, slot.Index), true
	default:
		return infinitiveParticle, true
	}
}

// personForm never yields "no form": English data leaves regular persons
// without an ending, which means the bare root.
func (englishRules) personForm(_, root string, slot PersonSlot) *string {
	f := root + slot.Suffix
	return &f
}

func (englishRules) invariantForm(tense, root, suffix string) string {
	if tenseIs(tense, "infinitive present") {
		return infinitiveParticle + " " + root + suffix
	}
	return root + suffix
}

func (englishRules) emptyForm(tense string, v VerbEntry) *string {
	if tenseIs(tense, "infinitive present") {
		return prefixed(infinitiveParticle, v.Infinitive)
	}
	inf := v.Infinitive
	return &inf
}

// ---- Spanish --------------------------------------------------------------

type spanishRules struct{ baseRules }

func (r spanishRules) personLabel(tense string, n int, slot PersonSlot, sf SubjectFormat) (string, bool) {
	switch {
	case n == 5 && !tenseHasPrefix(tense, "Imperativo"):
		return "", false
	case n == len(canonicalAbbrevs):
		return r.pronoun(sf, slot.Index), true
	case tenseIs(tense, "Imperativo Afirmativo"):
		return r.imperative(sf, slot.Index), true
	case tenseIs(tense, "Imperativo non"):
		return r.imperative(sf, slot.Index) + " " + negationWords[Spanish], true
	case tenseIs(tense, "Gerundio Gerondio"):
		return "", !slot.Absent && strings.HasSuffix(slot.Suffix, "ndo")
	case tenseIs(tense, "Infinitivo Infinitivo"):
		return "", !slot.Absent && strings.HasSuffix(slot.Suffix, "r")
	default:
		return strconv.Itoa(slot.Index), true
	}
}

func (r spanishRules) personForm(tense, root string, slot PersonSlot) *string {
	return r.markedPersonForm(tense, root, slot)
}

// ---- Italian, Portuguese --------------------------------------------------

// negatedFormRules label imperatives with the canonical abbreviations and
// put the negation word in front of the negative imperative forms.
type negatedFormRules struct {
	baseRules
	negativeTense string
}

func (r negatedFormRules) personLabel(tense string, n int, slot PersonSlot, sf SubjectFormat) (string, bool) {
	imperative := tenseHasPrefix(tense, "Imperativo")
	switch {
	case n == len(canonicalAbbrevs) && !imperative:
		return r.pronoun(sf, slot.Index), true
	case imperative:
		return r.pronoun(Abbreviation, slot.Index), true
	default:
		return strconv.Itoa(slot.Index), true
	}
}

func (r negatedFormRules) personForm(tense, root string, slot PersonSlot) *string {
	f := r.markedPersonForm(tense, root, slot)
	if f == nil || !tenseIs(tense, r.negativeTense) {
		return f
	}
	return prefixed(negationWords[r.lang], *f)
}

// ---- Romanian -------------------------------------------------------------

type romanianRules struct{ baseRules }

// romanianInfinitiveParticle precedes Romanian affirmative infinitives.
const romanianInfinitiveParticle = "a"

func (r romanianRules) personLabel(tense string, n int, slot PersonSlot, sf SubjectFormat) (string, bool) {
	switch {
	case n == len(canonicalAbbrevs):
		return r.pronoun(sf, slot.Index), true
	case tenseHasPrefix(tense, "Imperativ Imperativ"), tenseIs(tense, "Imperativ Negativ"):
		return r.imperative(sf, slot.Index), true
	default:
		return strconv.Itoa(slot.Index), true
	}
}

func (r romanianRules) personForm(tense, root string, slot PersonSlot) *string {
	f := r.markedPersonForm(tense, root, slot)
	if f == nil || !tenseIs(tense, "Imperativ Negativ") {
		return f
	}
	return prefixed(negationWords[Romanian], *f)
}

func (romanianRules) invariantForm(tense, root, suffix string) string {
	if tenseIs(tense, "Infinitiv Afirmativ") {
		return romanianInfinitiveParticle + " " + root + suffix
	}
	return root + suffix
}
