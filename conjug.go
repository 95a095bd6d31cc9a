// Package conjug conjugates verbs in French, English, Spanish, Italian,
// Portuguese and Romanian from template tables, predicting the template of
// unknown verbs with a trained classifier.
package conjug

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// Classifier predicts the template key of a verb missing from the store.
// Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(word string) (templateKey string, confidence float64, err error)
}

// Engine conjugates verbs of one language. It is read-only after
// construction and safe for concurrent use.
type Engine struct {
	store      *TemplateStore
	classifier Classifier
	log        *slog.Logger
	workers    int

	// cache memoizes results by (word, subject format); nil when disabled.
	cache *lru.Cache[cacheKey, *ConjugatedVerb]
}

type cacheKey struct {
	word string
	sf   SubjectFormat
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	classifier Classifier
	log        *slog.Logger
	cacheSize  int
	workers    int
}

// WithClassifier enables prediction for unknown verbs.
func WithClassifier(c Classifier) Option {
	return func(o *engineOptions) { o.classifier = c }
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) { o.log = l }
}

// WithCacheSize memoizes up to n results. n <= 0 disables the cache.
func WithCacheSize(n int) Option {
	return func(o *engineOptions) { o.cacheSize = n }
}

// WithWorkers bounds the parallelism of ConjugateMany. n <= 0 keeps the
// default of GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// NewEngine wraps store.
func NewEngine(store *TemplateStore, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("conjug: nil template store")
	}
	o := engineOptions{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		store:      store,
		classifier: o.classifier,
		log:        o.log.With("lang", string(store.Language())),
		workers:    o.workers,
	}
	if o.cacheSize > 0 {
		c, err := lru.New[cacheKey, *ConjugatedVerb](o.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("conjug: cache: %w", err)
		}
		e.cache = c
	}
	return e, nil
}

// Open loads the store of lang from fsys and builds an engine on it.
func Open(fsys fs.FS, lang Language, opts ...Option) (*Engine, error) {
	store, err := LoadStore(fsys, lang)
	if err != nil {
		return nil, err
	}
	return NewEngine(store, opts...)
}

// Language returns the engine language.
func (e *Engine) Language() Language { return e.store.Language() }

// Store returns the underlying template store.
func (e *Engine) Store() *TemplateStore { return e.store }

// HasModel reports whether unknown verbs can be predicted.
func (e *Engine) HasModel() bool { return e.classifier != nil }

// ModelStatus returns ErrNoModelAvailable when no classifier is configured.
func (e *Engine) ModelStatus() error {
	if e.classifier == nil {
		return fmt.Errorf("%w for %s", ErrNoModelAvailable, e.Language())
	}
	return nil
}

// IsAdmissible reports whether word could be a verb of the engine language.
func (e *Engine) IsAdmissible(word string) bool {
	return e.store.IsAdmissible(NormalizeWord(word))
}

// Conjugate returns the full conjugation of word. Errors are *VerbError
// values wrapping ErrInvalidVerbForm, ErrNoConjugationAvailable or
// ErrUnknownTemplate. The result is owned by the caller.
func (e *Engine) Conjugate(word string, sf SubjectFormat) (*ConjugatedVerb, error) {
	if sf == "" {
		sf = Abbreviation
	}
	w := NormalizeWord(word)
	lang := e.Language()
	if w == "" || !e.store.IsAdmissible(w) {
		return nil, verbError(word, lang, ErrInvalidVerbForm)
	}

	key := cacheKey{word: w, sf: sf}
	if e.cache != nil {
		if v, ok := e.cache.Get(key); ok {
			return v.Clone(), nil
		}
	}

	v, err := e.conjugate(w, sf)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Add(key, v.Clone())
	}
	return v, nil
}

func (e *Engine) conjugate(w string, sf SubjectFormat) (*ConjugatedVerb, error) {
	lang := e.Language()

	if entry, ok := e.store.LookupVerb(w); ok {
		return e.synthesize(entry, sf, false, 0)
	}
	if e.classifier == nil {
		return nil, verbError(w, lang, ErrNoConjugationAvailable)
	}

	key, confidence, err := e.classifier.Classify(w)
	if err != nil {
		return nil, verbError(w, lang, fmt.Errorf("%w: %w", ErrNoConjugationAvailable, err))
	}
	e.log.Debug("template predicted",
		slog.String("word", w),
		slog.String("template", key),
		slog.Float64("confidence", confidence),
	)
	return e.synthesize(NewVerbEntry(w, "", key), sf, true, confidence)
}

func (e *Engine) synthesize(entry VerbEntry, sf SubjectFormat, predicted bool, confidence float64) (*ConjugatedVerb, error) {
	lang := e.Language()
	tpl, ok := e.store.LookupTemplate(entry.TemplateKey)
	if !ok {
		return nil, verbError(entry.Infinitive, lang, fmt.Errorf("%w: %q", ErrUnknownTemplate, entry.TemplateKey))
	}
	table, err := Synthesize(lang, entry, tpl, sf)
	if err != nil {
		return nil, verbError(entry.Infinitive, lang, err)
	}
	out := &ConjugatedVerb{
		Infinitive:    entry.Infinitive,
		Root:          entry.Root,
		TemplateKey:   entry.TemplateKey,
		Language:      lang,
		SubjectFormat: sf,
		Predicted:     predicted,
		Table:         table,
	}
	if predicted {
		c := math.Round(confidence*1000) / 1000
		out.ConfidenceScore = &c
	}
	return out, nil
}

// BatchResult is the outcome of one word of a batch.
type BatchResult struct {
	Word string
	Verb *ConjugatedVerb
	Err  error
}

// ConjugateMany conjugates words in parallel. Results keep the input
// order; per-word failures are reported in BatchResult.Err. The returned
// error is non-nil only when ctx is cancelled.
func (e *Engine) ConjugateMany(ctx context.Context, words []string, sf SubjectFormat) ([]BatchResult, error) {
	results := make([]BatchResult, len(words))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, w := range words {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := e.Conjugate(w, sf)
			results[i] = BatchResult{Word: w, Verb: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
