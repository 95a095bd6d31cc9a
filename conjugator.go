package conjug

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/cours-de-latin/conjug/classifier"
)

// Conjugator dispatches queries to one Engine per language.
type Conjugator struct {
	engines map[Language]*Engine
}

// NewConjugator groups engines by language. Later engines replace earlier
// ones of the same language.
func NewConjugator(engines ...*Engine) *Conjugator {
	c := &Conjugator{engines: make(map[Language]*Engine, len(engines))}
	for _, e := range engines {
		c.engines[e.Language()] = e
	}
	return c
}

// LoadOptions controls LoadConjugator.
type LoadOptions struct {
	// Data holds the verbs-<lang> and conjugation-<lang> files.
	Data fs.FS
	// Models holds trained_model-<lang>.zip artifacts; nil disables
	// prediction.
	Models fs.FS
	// RequireModel turns a missing artifact into a load error.
	RequireModel bool
	Logger       *slog.Logger
	// Options are applied to every engine.
	Options []Option
}

// LoadConjugator opens an engine for each language. Language codes go
// through ParseLanguage, so "default" selects French.
func LoadConjugator(langs []string, o LoadOptions) (*Conjugator, error) {
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}
	var engines []*Engine
	for _, code := range langs {
		lang, err := ParseLanguage(code)
		if err != nil {
			return nil, err
		}
		opts := append([]Option{WithLogger(log)}, o.Options...)

		model, err := loadModel(o.Models, lang)
		switch {
		case err == nil:
			opts = append(opts, WithClassifier(model))
		case o.RequireModel:
			return nil, err
		default:
			log.Warn("prediction disabled", slog.String("lang", string(lang)), slog.Any("error", err))
		}

		e, err := Open(o.Data, lang, opts...)
		if err != nil {
			return nil, err
		}
		log.Info("language loaded",
			slog.String("lang", string(lang)),
			slog.Int("verbs", e.Store().Len()),
			slog.Int("templates", len(e.Store().TemplateKeys())),
			slog.Bool("model", e.HasModel()),
		)
		engines = append(engines, e)
	}
	return NewConjugator(engines...), nil
}

func loadModel(models fs.FS, lang Language) (*classifier.Model, error) {
	if models == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoModelAvailable, lang)
	}
	m, err := classifier.Load(models, string(lang))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w for %s: %w", ErrNoModelAvailable, lang, err)
	}
	return m, err
}

// Engine returns the engine of lang.
func (c *Conjugator) Engine(lang Language) (*Engine, bool) {
	e, ok := c.engines[lang]
	return e, ok
}

// Languages lists the loaded languages, sorted.
func (c *Conjugator) Languages() []Language {
	out := make([]Language, 0, len(c.engines))
	for l := range c.engines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *Conjugator) engine(code string) (*Engine, error) {
	lang, err := ParseLanguage(code)
	if err != nil {
		return nil, err
	}
	e, ok := c.engines[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not loaded", ErrUnsupportedLanguage, code)
	}
	return e, nil
}

// Conjugate conjugates word in the language named by code.
func (c *Conjugator) Conjugate(word, code string, sf SubjectFormat) (*ConjugatedVerb, error) {
	e, err := c.engine(code)
	if err != nil {
		return nil, err
	}
	return e.Conjugate(word, sf)
}

// IsAdmissible reports whether word could be a verb of the language named
// by code. Unknown languages are never admissible.
func (c *Conjugator) IsAdmissible(word, code string) bool {
	e, err := c.engine(code)
	if err != nil {
		return false
	}
	return e.IsAdmissible(word)
}
