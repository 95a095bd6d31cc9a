package conjug

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TemplateStore indexes the verbs and templates of one language. It is
// built once and never mutated afterwards, so it may be shared freely.
type TemplateStore struct {
	lang Language

	// verbs maps infinitive → VerbEntry.
	verbs map[string]VerbEntry

	// templates maps template key → *Template. Never handed out directly.
	templates map[string]*Template

	// templateKeys holds the template keys in sorted order.
	templateKeys []string

	// endings is the set of admissible 2-rune verb endings.
	endings map[string]struct{}
}

// NewTemplateStore indexes verbs and templates for lang. Every verb must
// reference a known template; violations are joined under
// ErrUnknownTemplate.
func NewTemplateStore(lang Language, verbs []VerbEntry, templates []*Template) (*TemplateStore, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(lang))
	}
	s := &TemplateStore{
		lang:      lang,
		verbs:     make(map[string]VerbEntry, len(verbs)),
		templates: make(map[string]*Template, len(templates)),
		endings:   make(map[string]struct{}),
	}

	for _, t := range templates {
		s.templates[t.Key] = t
	}
	s.templateKeys = make([]string, 0, len(s.templates))
	for k := range s.templates {
		s.templateKeys = append(s.templateKeys, k)
	}
	sort.Strings(s.templateKeys)

	var errs []error
	for _, v := range verbs {
		if _, ok := s.templates[v.TemplateKey]; !ok {
			errs = append(errs, fmt.Errorf("%w: verb %q references %q", ErrUnknownTemplate, v.Infinitive, v.TemplateKey))
			continue
		}
		s.verbs[v.Infinitive] = v
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if !lang.unrestrictedMorphology() {
		for inf := range s.verbs {
			// Multi-word infinitives contribute both the ending of the
			// leading verb and the ending of the whole entry.
			first, _, _ := strings.Cut(inf, " ")
			for _, w := range []string{first, inf} {
				if len([]rune(w)) < 2 {
					continue
				}
				s.endings[lastRunes(w, 2)] = struct{}{}
			}
		}
	}
	return s, nil
}

// Language returns the store language.
func (s *TemplateStore) Language() Language {
	return s.lang
}

// LookupVerb returns the dictionary entry for infinitive. The lookup is
// exact; callers normalize beforehand.
func (s *TemplateStore) LookupVerb(infinitive string) (VerbEntry, bool) {
	v, ok := s.verbs[infinitive]
	return v, ok
}

// LookupTemplate returns a deep copy of the template stored under key.
func (s *TemplateStore) LookupTemplate(key string) (*Template, bool) {
	t, ok := s.templates[key]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// HasTemplate reports whether key is a known template.
func (s *TemplateStore) HasTemplate(key string) bool {
	_, ok := s.templates[key]
	return ok
}

// IsAdmissible reports whether word could plausibly be a verb. For
// English every word is admissible; other languages require the last two
// runes to be the ending of some known infinitive.
func (s *TemplateStore) IsAdmissible(word string) bool {
	if s.lang.unrestrictedMorphology() {
		return true
	}
	_, ok := s.endings[lastRunes(word, 2)]
	return ok
}

// TemplateKeys returns the sorted template keys.
func (s *TemplateStore) TemplateKeys() []string {
	return append([]string(nil), s.templateKeys...)
}

// Verbs returns every verb entry sorted by infinitive.
func (s *TemplateStore) Verbs() []VerbEntry {
	out := make([]VerbEntry, 0, len(s.verbs))
	for _, v := range s.verbs {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Infinitive < out[j].Infinitive })
	return out
}

// VerbTemplates returns infinitive → template key for every known verb.
// This is the sample source for classifier training.
func (s *TemplateStore) VerbTemplates() map[string]string {
	out := make(map[string]string, len(s.verbs))
	for inf, v := range s.verbs {
		out[inf] = v.TemplateKey
	}
	return out
}

// Len returns the number of known verbs.
func (s *TemplateStore) Len() int {
	return len(s.verbs)
}
