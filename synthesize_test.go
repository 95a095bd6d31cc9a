package conjug

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(s string) *string { return &s }

func synth(t *testing.T, lang Language, infinitive string, sf SubjectFormat) *Table {
	t.Helper()
	s := loadStore(t, lang)
	v, ok := s.LookupVerb(infinitive)
	require.True(t, ok, "%s not in %s store", infinitive, lang)
	tpl, ok := s.LookupTemplate(v.TemplateKey)
	require.True(t, ok)
	table, err := Synthesize(lang, v, tpl, sf)
	require.NoError(t, err)
	return table
}

func persons(t *testing.T, table *Table, mood, tense string) []PersonForm {
	t.Helper()
	tf := table.Tense(mood, tense)
	require.NotNil(t, tf, "%s/%s missing", mood, tense)
	require.True(t, tf.Personal, "%s/%s is not personal", mood, tense)
	return tf.Persons
}

func TestSynthesize_FrenchPresent(t *testing.T) {
	table := synth(t, French, "manger", Abbreviation)
	want := []PersonForm{
		{"1s", sp("mange")}, {"2s", sp("manges")}, {"3s", sp("mange")},
		{"1p", sp("mangeons")}, {"2p", sp("mangez")}, {"3p", sp("mangent")},
	}
	if diff := cmp.Diff(want, persons(t, table, "Indicatif", "Présent")); diff != "" {
		t.Errorf("manger présent (-want +got):\n%s", diff)
	}
}

func TestSynthesize_FrenchLabels(t *testing.T) {
	abbrev := synth(t, French, "aimer", Abbreviation)
	assert.Equal(t, []string{"2s", "1p", "2p"}, labels(persons(t, abbrev, "Imperatif", "Imperatif Présent")))
	assert.Equal(t, []string{"ms", "mp", "fs", "fp"}, labels(persons(t, abbrev, "Participe", "Participe Passé")))

	pron := synth(t, French, "aimer", Pronoun)
	assert.Equal(t,
		[]string{"je", "tu", "il (elle, on)", "nous", "vous", "ils (elles)"},
		labels(persons(t, pron, "Indicatif", "Présent")))

	// Duplicate empty labels are all kept.
	imp := persons(t, pron, "Imperatif", "Imperatif Présent")
	require.Len(t, imp, 3)
	assert.Equal(t, []string{"", "", ""}, labels(imp))
	assert.Equal(t, "aimons", *imp[1].Form)

	form, ok := pron.Lookup("Participe", "Participe Passé", "feminin pluriel")
	require.True(t, ok)
	assert.Equal(t, "aimées", *form)
}

func labels(ps []PersonForm) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Label
	}
	return out
}

func TestSynthesize_AbsentForms(t *testing.T) {
	table := synth(t, French, "pleuvoir", Abbreviation)

	form, found := table.Lookup("Indicatif", "Présent", "1s")
	assert.True(t, found, "cell exists")
	assert.Nil(t, form, "but has no form")

	form, found = table.Lookup("Indicatif", "Présent", "3s")
	require.True(t, found)
	assert.Equal(t, "pleut", *form)

	_, found = table.Lookup("Indicatif", "Futur", "3s")
	assert.False(t, found)
}

func TestSynthesize_English(t *testing.T) {
	bring := synth(t, English, "bring", Abbreviation)
	inf, ok := bring.Lookup("infinitive", "infinitive present", "")
	require.True(t, ok)
	assert.Equal(t, "to bring", *inf)

	past, _ := bring.Lookup("indicative", "indicative past tense", "")
	assert.Equal(t, "brought", *past)
	cond, _ := bring.Lookup("conditional", "conditional present", "")
	assert.Equal(t, "bring", *cond, "empty entry renders the infinitive")

	pron := synth(t, English, "walk", Pronoun)
	imp := persons(t, pron, "imperative", "imperative present")
	assert.Equal(t, []string{"", "let's", ""}, labels(imp))
	for _, p := range imp {
		require.NotNil(t, p.Form, "english never yields null persons")
		assert.Equal(t, "walk", *p.Form)
	}
	s3, _ := pron.Lookup("indicative", "indicative present", "he/she/it")
	assert.Equal(t, "walks", *s3)

	be := synth(t, English, "be", Abbreviation)
	inf, _ = be.Lookup("infinitive", "infinitive present", "")
	assert.Equal(t, "to be", *inf)
	was, _ := be.Lookup("indicative", "indicative past tense", "3s")
	assert.Equal(t, "was", *was)
}

func TestSynthesize_Spanish(t *testing.T) {
	table := synth(t, Spanish, "hablar", Abbreviation)

	assert.Empty(t, persons(t, table, "Subjuntivo", "Subjuntivo pretérito imperfecto 2"),
		"five-person non-imperative tenses are dropped")

	want := []PersonForm{
		{"2s", sp("habla")}, {"3s", sp("hable")}, {"1p", sp("hablemos")}, {"2p", sp("hablad")}, {"3p", sp("hablen")},
	}
	if diff := cmp.Diff(want, persons(t, table, "Imperativo", "Imperativo Afirmativo")); diff != "" {
		t.Errorf("afirmativo (-want +got):\n%s", diff)
	}
	neg := persons(t, table, "Imperativo", "Imperativo non")
	assert.Equal(t, []string{"2s no", "3s no", "1p no", "2p no", "3p no"}, labels(neg))
	assert.Equal(t, "hables", *neg[0].Form)

	assert.Equal(t, []PersonForm{{"", sp("hablando")}}, persons(t, table, "Gerundio", "Gerundio Gerondio"))
	assert.Equal(t, []PersonForm{{"", sp("hablar")}}, persons(t, table, "Infinitivo", "Infinitivo Infinitivo"))

	pron := synth(t, Spanish, "hablar", Pronoun)
	assert.Equal(t, "yo", persons(t, pron, "Indicativo", "Indicativo presente")[0].Label)
	assert.Equal(t, "tú", persons(t, pron, "Imperativo", "Imperativo Afirmativo")[0].Label)
}

func TestSynthesize_ItalianPortuguese(t *testing.T) {
	it := synth(t, Italian, "parlare", Pronoun)
	assert.Equal(t, "io", persons(t, it, "Indicativo", "Indicativo presente")[0].Label)

	neg := persons(t, it, "Imperativo", "Imperativo non")
	assert.Equal(t, []string{"1s", "2s", "3s", "1p", "2p", "3p"}, labels(neg),
		"imperatives keep abbreviations in pronoun mode")
	assert.Nil(t, neg[0].Form)
	assert.Equal(t, "non parlare", *neg[1].Form)

	aff := persons(t, it, "Imperativo", "Imperativo Imperativo")
	assert.Equal(t, "parla", *aff[1].Form)

	pt := synth(t, Portuguese, "cantar", Abbreviation)
	ptNeg := persons(t, pt, "Imperativo", "Imperativo Negativo")
	assert.Equal(t, "não cantes", *ptNeg[1].Form)
	ptAff := persons(t, pt, "Imperativo", "Imperativo Afirmativo")
	assert.Equal(t, "canta", *ptAff[1].Form)
}

func TestSynthesize_Romanian(t *testing.T) {
	table := synth(t, Romanian, "cânta", Abbreviation)

	inf, _ := table.Lookup("Infinitiv", "Infinitiv Afirmativ", "")
	assert.Equal(t, "a cânta", *inf)

	imp := persons(t, table, "Imperativ", "Imperativ Imperativ")
	assert.Equal(t, []PersonForm{{"2s", sp("cântă")}, {"2p", sp("cântați")}}, imp)

	neg := persons(t, table, "Imperativ", "Imperativ Negativ")
	assert.Equal(t, []PersonForm{{"2s", sp("nu cânta")}, {"2p", sp("nu cântați")}}, neg)

	pron := synth(t, Romanian, "cânta", Pronoun)
	assert.Equal(t, "el/ea", persons(t, pron, "Indicativ", "Indicativ Prezent")[2].Label)
}

func TestSynthesize_Deterministic(t *testing.T) {
	s := loadStore(t, French)
	v, _ := s.LookupVerb("finir")
	tpl, _ := s.LookupTemplate(v.TemplateKey)

	a, err := Synthesize(French, v, tpl, Pronoun)
	require.NoError(t, err)
	b, err := Synthesize(French, v, tpl, Pronoun)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("repeated synthesis differs:\n%s", diff)
	}

	// Editing one result leaves the template and other results alone.
	*a.Moods[1].Tenses[0].Persons[0].Form = "changed"
	c, _ := Synthesize(French, v, tpl, Pronoun)
	assert.Equal(t, "finis", *c.Moods[1].Tenses[0].Persons[0].Form)
	assert.Equal(t, "finis", *b.Moods[1].Tenses[0].Persons[0].Form)
}

func TestSynthesize_DashSuffix(t *testing.T) {
	slots := []PersonSlot{{0, "o", false}, {1, "-", false}, {2, "a", false}, {3, "amos", false}, {4, "áis", false}, {5, "an", false}}
	tpl := func(mood, tense string) *Template {
		return &Template{Key: "habl:ar", Moods: []Mood{{Name: mood, Tenses: []Tense{{
			Name:  tense,
			Entry: InflectionEntry{Kind: EntryPersons, Persons: append([]PersonSlot(nil), slots...)},
		}}}}}
	}
	v := VerbEntry{Infinitive: "hablar", Root: "habl", TemplateKey: "habl:ar"}

	es, err := Synthesize(Spanish, v, tpl("Indicativo", "Indicativo presente"), Abbreviation)
	require.NoError(t, err)
	form, found := es.Lookup("Indicativo", "Indicativo presente", "2s")
	require.True(t, found)
	assert.Nil(t, form, "dash marks a missing form")

	fr, err := Synthesize(French, v, tpl("Indicatif", "Présent"), Abbreviation)
	require.NoError(t, err)
	form, found = fr.Lookup("Indicatif", "Présent", "2s")
	require.True(t, found)
	require.NotNil(t, form)
	assert.Equal(t, "habl-", *form, "French keeps the dash as a suffix")
}

func TestSynthesize_Errors(t *testing.T) {
	_, err := Synthesize(Language("de"), VerbEntry{}, &Template{}, Abbreviation)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = Synthesize(French, VerbEntry{TemplateKey: "x:er"}, nil, Abbreviation)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestPersonLabel(t *testing.T) {
	for _, lang := range Languages() {
		l, ok := PersonLabel(lang, Abbreviation, 0)
		require.True(t, ok)
		assert.Equal(t, "1s", l, lang)
	}
	l, _ := PersonLabel(French, Pronoun, 0)
	assert.Equal(t, "je", l)
	_, ok := PersonLabel(French, Pronoun, 6)
	assert.False(t, ok)
	assert.Equal(t, "nu", NegationWord(Romanian))
}

func TestTable_Iterate(t *testing.T) {
	table := synth(t, French, "manger", Abbreviation)
	rows := table.Iterate()
	assert.Len(t, rows, 1+6+6+3+1+4)
	assert.Equal(t, 6, table.Len())

	first := rows[0]
	assert.Equal(t, Row{Mood: "Infinitif", Tense: "Infinitif Présent", Form: first.Form}, first)
	assert.Equal(t, "manger", *first.Form)
	assert.True(t, rows[1].Personal)
	assert.Equal(t, "1s", rows[1].Label)
}
