package conjug

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testdata = os.DirFS("testdata")

func loadStore(t *testing.T, lang Language) *TemplateStore {
	t.Helper()
	s, err := LoadStore(testdata, lang)
	require.NoError(t, err, "LoadStore(%s)", lang)
	return s
}

func TestLoadStore(t *testing.T) {
	for _, lang := range Languages() {
		s := loadStore(t, lang)
		t.Logf("%s: %d verbs, %d templates", lang, s.Len(), len(s.TemplateKeys()))
		assert.Positive(t, s.Len())
		for _, v := range s.Verbs() {
			assert.True(t, s.HasTemplate(v.TemplateKey), "%s references %s", v.Infinitive, v.TemplateKey)
		}
	}

	fr := loadStore(t, French)
	assert.Equal(t, 9, fr.Len())
	assert.Equal(t, []string{":être", "aim:er", "fin:ir", "man:ger", "pl:euvoir"}, fr.TemplateKeys())

	v, ok := fr.LookupVerb("chanter")
	require.True(t, ok)
	assert.Equal(t, VerbEntry{Infinitive: "chanter", Root: "chant", TemplateKey: "aim:er"}, v)
}

func TestLoadStore_Formats(t *testing.T) {
	y, err := LoadStore(os.DirFS("testdata/yaml"), French)
	require.NoError(t, err)
	x, err := LoadStore(os.DirFS("testdata/xml"), French)
	require.NoError(t, err)

	yt, ok := y.LookupTemplate("man:ger")
	require.True(t, ok)
	xt, ok := x.LookupTemplate("man:ger")
	require.True(t, ok)

	// Both encodings keep declaration order.
	assert.Equal(t, []string{"Infinitif", "Indicatif", "Imperatif", "Participe"}, moodNames(yt))
	assert.Equal(t, []string{"infinitive", "indicative", "imperative", "participle"}, moodNames(xt))

	// Bare YAML lists index persons by position.
	want := []PersonSlot{{0, "ge", false}, {1, "ges", false}, {2, "ge", false}, {3, "geons", false}, {4, "gez", false}, {5, "gent", false}}
	if diff := cmp.Diff(want, yt.Mood("Indicatif").Tense("Présent").Entry.Persons); diff != "" {
		t.Errorf("yaml persons (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, xt.Mood("indicative").Tense("present").Entry.Persons); diff != "" {
		t.Errorf("xml persons (-want +got):\n%s", diff)
	}

	fin, _ := y.LookupTemplate("fin:ir")
	pp := fin.Mood("Participe").Tense("Participe Passé").Entry
	assert.True(t, pp.Persons[3].Absent, "~ is an absent slot")

	// XML: dashes in tense tags become spaces, <p/> is absent, a tense
	// without <p> is empty.
	pl, ok := x.LookupTemplate("pl:euvoir")
	require.True(t, ok)
	ind := pl.Mood("indicative")
	require.NotNil(t, ind.Tense("present"))
	assert.True(t, ind.Tense("present").Entry.Persons[0].Absent)
	assert.Equal(t, EntryEmpty, ind.Tense("simple past").Entry.Kind)
	assert.Equal(t, EntryInvariant, pl.Mood("infinitive").Tense("infinitive present").Entry.Kind)

	v, ok := x.LookupVerb("pleuvoir")
	require.True(t, ok)
	assert.Equal(t, "pl", v.Root, "root is derived from the template key")
}

func TestParseTemplatesXML_EmptyInflection(t *testing.T) {
	const doc = `<conjugation-en>
<template name="b:e">
<infinitive><infinitive-present><p><i/></p></infinitive-present></infinitive>
<indicative><present><p><i>e</i></p><p><i/></p><p /></present></indicative>
</template>
</conjugation-en>`
	templates, err := parseTemplatesXML("conjugation-en.xml", []byte(doc))
	require.NoError(t, err)
	require.Len(t, templates, 1)

	tpl := templates[0]
	assert.Equal(t, EntryEmpty, tpl.Mood("infinitive").Tense("infinitive present").Entry.Kind,
		"a lone <i/> carries no inflection")

	want := []PersonSlot{{0, "e", false}, {1, "", false}, {2, "", true}}
	if diff := cmp.Diff(want, tpl.Mood("indicative").Tense("present").Entry.Persons); diff != "" {
		t.Errorf("persons (-want +got):\n%s", diff)
	}
}

func moodNames(t *Template) []string {
	var out []string
	for _, m := range t.Moods {
		out = append(out, m.Name)
	}
	return out
}

func TestLoadStore_UnknownTemplate(t *testing.T) {
	_, err := LoadStore(os.DirFS("testdata/broken"), French)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.Contains(t, err.Error(), "nag:er")
	assert.Contains(t, err.Error(), "boug:er")
}

func TestLoadStore_Errors(t *testing.T) {
	_, err := LoadStore(testdata, Language("de"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = LoadStore(os.DirFS(t.TempDir()), French)
	assert.Error(t, err)
}

func TestLookupTemplate_ReturnsCopy(t *testing.T) {
	s := loadStore(t, French)

	a, _ := s.LookupTemplate("aim:er")
	a.Moods[1].Tenses[0].Entry.Persons[0].Suffix = "XXX"
	a.Moods[0].Name = "changed"

	b, _ := s.LookupTemplate("aim:er")
	assert.Equal(t, "e", b.Moods[1].Tenses[0].Entry.Persons[0].Suffix)
	assert.Equal(t, "Infinitif", b.Moods[0].Name)
}

func TestRootOf(t *testing.T) {
	tests := []struct {
		inf, key, want string
	}{
		{"manger", "man:ger", "man"},
		{"aimer", "aim:er", "aim"},
		{"être", ":être", ""},
		{"walk", "walk", "walk"},
		{"a", "aim:er", ""},
		{"cânta", "cânt:a", "cânt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RootOf(tt.inf, tt.key), "RootOf(%q, %q)", tt.inf, tt.key)
	}
	assert.Equal(t, -3, RootOffset("man:ger"))
	assert.Equal(t, 0, RootOffset("walk"))
}

// Every regular verb is its root followed by the invariant infinitive
// suffix of its template.
func TestRootRoundTrip(t *testing.T) {
	infinitives := map[Language][2]string{
		French:     {"Infinitif", "Infinitif Présent"},
		English:    {"infinitive", "infinitive present"},
		Italian:    {"Infinito", "Infinito Presente"},
		Portuguese: {"Infinitivo", "Infinitivo Impessoal"},
		Romanian:   {"Infinitiv", "Infinitiv Afirmativ"},
	}
	for lang, coord := range infinitives {
		s := loadStore(t, lang)
		for _, v := range s.Verbs() {
			tpl, _ := s.LookupTemplate(v.TemplateKey)
			tn := tpl.Mood(coord[0]).Tense(coord[1])
			require.NotNil(t, tn, "%s %s", lang, v.TemplateKey)
			if tn.Entry.Kind != EntryInvariant {
				continue
			}
			assert.Equal(t, v.Infinitive, v.Root+tn.Entry.Suffix, "%s %s", lang, v.Infinitive)
			if RootOffset(v.TemplateKey) == 0 {
				assert.Equal(t, v.Infinitive, v.Root)
			}
		}
	}
}

func TestIsAdmissible(t *testing.T) {
	fr := loadStore(t, French)
	assert.True(t, fr.IsAdmissible("bloguer"))
	assert.True(t, fr.IsAdmissible("pâlir"))
	assert.True(t, fr.IsAdmissible("naître"))
	assert.False(t, fr.IsAdmissible("xyzzq"))
	assert.False(t, fr.IsAdmissible("chat"))

	en := loadStore(t, English)
	for _, w := range []string{"qqq", "x", "", "google"} {
		assert.True(t, en.IsAdmissible(w), "english accepts %q", w)
	}

	ro := loadStore(t, Romanian)
	assert.True(t, ro.IsAdmissible("lucra"))
	assert.False(t, ro.IsAdmissible("merge"))
}

func TestIsAdmissible_MultiWordInfinitive(t *testing.T) {
	s := multiWordStore(t)
	assert.True(t, s.IsAdmissible("mettre au point"), "whole infinitive ending")
	assert.True(t, s.IsAdmissible("battre"), "leading verb ending")
	assert.True(t, s.IsAdmissible("bouger"))
	assert.False(t, s.IsAdmissible("chat"))
}

// multiWordStore holds "manger" and the multi-word "mettre au point".
func multiWordStore(t *testing.T) *TemplateStore {
	t.Helper()
	fr := loadStore(t, French)
	aim, ok := fr.LookupTemplate("aim:er")
	require.True(t, ok)
	met := aim.Clone()
	met.Key = "met:tre"

	s, err := NewTemplateStore(French, []VerbEntry{
		NewVerbEntry("manger", "mang", "aim:er"),
		NewVerbEntry("mettre au point", "met", "met:tre"),
	}, []*Template{aim, met})
	require.NoError(t, err)
	return s
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{"fr": French, "default": French, "": French, " EN ": English, "ro": Romanian} {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLanguage("de")
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
	assert.Equal(t, "Română", Romanian.Name())
	assert.Len(t, LanguageNames(), 6)
}

func TestNormalizeWord(t *testing.T) {
	assert.Equal(t, "manger", NormalizeWord("  MANGER "))
	assert.Equal(t, "être", NormalizeWord("Être"))
	assert.Equal(t, "se lever", NormalizeWord("se \t  lever"))
	assert.Equal(t, "", NormalizeWord("   "))
}
