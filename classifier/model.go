package classifier

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNotTrained is returned when a model without weights is queried.
var ErrNotTrained = errors.New("classifier: model is not trained")

// Config holds training hyper-parameters.
type Config struct {
	Language string     `json:"language"`
	Ngrams   NgramRange `json:"ngrams"`

	// Elastic-net regularisation of the final model.
	Alpha   float64 `json:"alpha"`
	L1Ratio float64 `json:"l1_ratio"`
	Eta0    float64 `json:"eta0"`
	Epochs  int     `json:"epochs"`
	Seed    uint64  `json:"seed"`

	// L1-only pass used to pick informative features. A zero
	// SelectionAlpha disables selection.
	SelectionAlpha     float64 `json:"selection_alpha"`
	SelectionThreshold float64 `json:"selection_threshold"`
}

// DefaultConfig returns the hyper-parameters used for lang.
func DefaultConfig(lang string) Config {
	return Config{
		Language:           lang,
		Ngrams:             DefaultNgramRange,
		Alpha:              1e-5,
		L1Ratio:            0.15,
		Eta0:               0.5,
		Epochs:             10,
		Seed:               DefaultSeed,
		SelectionAlpha:     1e-5,
		SelectionThreshold: 1e-5,
	}
}

// Model maps verb infinitives to conjugation template keys.
//
// A trained Model is read-only and safe for concurrent use.
type Model struct {
	Config     Config    `json:"config"`
	Vocabulary []string  `json:"vocabulary"`
	Classes    []string  `json:"classes"`
	Weights    []float64 `json:"weights"`
	Bias       []float64 `json:"bias"`

	vocab *vocabulary
	lin   *linear
}

// NewModel returns an untrained model.
func NewModel(cfg Config) *Model {
	return &Model{Config: cfg}
}

// Language returns the language code the model was trained for.
func (m *Model) Language() string { return m.Config.Language }

// Trained reports whether the model can classify.
func (m *Model) Trained() bool { return m.lin != nil && len(m.Classes) > 0 }

// Train fits the model on words and their template labels.
func (m *Model) Train(words, labels []string) error {
	if len(words) != len(labels) {
		return fmt.Errorf("classifier: %d words but %d labels", len(words), len(labels))
	}
	if len(words) == 0 {
		return errors.New("classifier: empty training set")
	}

	classes := uniqueStrings(labels)
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = classIndex[l]
	}

	docs := make([][]string, len(words))
	for i, w := range words {
		docs[i] = ExtractFeatures(w, m.Config.Language, m.Config.Ngrams)
	}
	vocab := fitVocabulary(docs)

	if m.Config.SelectionAlpha > 0 {
		sel := trainSGD(vocab.transformAll(docs), y, len(vocab.terms), len(classes), sgdParams{
			Alpha:   m.Config.SelectionAlpha,
			L1Ratio: 1,
			Eta0:    m.Config.Eta0,
			Epochs:  m.Config.Epochs,
			Seed:    m.Config.Seed,
		})
		vocab = vocab.subset(selectColumns(sel, len(vocab.terms), m.Config.SelectionThreshold))
	}

	lin := trainSGD(vocab.transformAll(docs), y, len(vocab.terms), len(classes), sgdParams{
		Alpha:   m.Config.Alpha,
		L1Ratio: m.Config.L1Ratio,
		Eta0:    m.Config.Eta0,
		Epochs:  m.Config.Epochs,
		Seed:    m.Config.Seed,
	})

	m.Vocabulary = vocab.terms
	m.Classes = classes
	m.Weights = lin.Weights
	m.Bias = lin.Bias
	m.vocab = vocab
	m.lin = lin
	return nil
}

// restore rebuilds the lookup structures after decoding.
func (m *Model) restore() error {
	k := len(m.Classes)
	if k == 0 {
		return errors.New("classifier: model has no classes")
	}
	if len(m.Bias) != k {
		return fmt.Errorf("classifier: %d biases for %d classes", len(m.Bias), k)
	}
	if len(m.Weights) != len(m.Vocabulary)*k {
		return fmt.Errorf("classifier: %d weights for %d features x %d classes",
			len(m.Weights), len(m.Vocabulary), k)
	}
	m.vocab = newVocabulary(m.Vocabulary)
	m.lin = &linear{K: k, Weights: m.Weights, Bias: m.Bias}
	return nil
}

// PredictProba returns one probability vector per word, indexed like
// Classes.
func (m *Model) PredictProba(words []string) ([][]float64, error) {
	if !m.Trained() {
		return nil, ErrNotTrained
	}
	out := make([][]float64, len(words))
	for i, w := range words {
		out[i] = m.proba(w)
	}
	return out, nil
}

// Predict returns the most probable template for each word.
func (m *Model) Predict(words []string) ([]string, error) {
	probs, err := m.PredictProba(words)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(words))
	for i, p := range probs {
		out[i] = m.Classes[argmax(p)]
	}
	return out, nil
}

// Classify returns the predicted template for word and the probability
// assigned to it.
func (m *Model) Classify(word string) (string, float64, error) {
	if !m.Trained() {
		return "", 0, ErrNotTrained
	}
	p := m.proba(word)
	best := argmax(p)
	return m.Classes[best], p[best], nil
}

func (m *Model) proba(word string) []float64 {
	x := m.vocab.transform(ExtractFeatures(word, m.Config.Language, m.Config.Ngrams))
	p := make([]float64, m.lin.K)
	m.lin.probabilities(p, x)
	return p
}

// Miss is a misclassified sample.
type Miss struct {
	Word      string `json:"word"`
	Expected  string `json:"expected"`
	Predicted string `json:"predicted"`
}

// Report summarises an evaluation run.
type Report struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
	Misses   []Miss  `json:"misses,omitempty"`
}

// Score runs the model over labelled samples and reports every miss.
func (m *Model) Score(samples []Sample) (Report, error) {
	pred, err := m.Predict(Words(samples))
	if err != nil {
		return Report{}, err
	}
	rep := Report{Total: len(samples)}
	for i, s := range samples {
		if pred[i] == s.Template {
			rep.Correct++
			continue
		}
		rep.Misses = append(rep.Misses, Miss{Word: s.Word, Expected: s.Template, Predicted: pred[i]})
	}
	if rep.Total > 0 {
		rep.Accuracy = float64(rep.Correct) / float64(rep.Total)
	}
	return rep, nil
}

// Evaluate compares predictions with gold labels and returns the accuracy
// and the number of misses. Empty input yields NaN accuracy.
func Evaluate(pred, gold []string) (accuracy float64, misses int, err error) {
	if len(pred) != len(gold) {
		return 0, 0, fmt.Errorf("classifier: %d predictions but %d labels", len(pred), len(gold))
	}
	if len(gold) == 0 {
		return math.NaN(), 0, nil
	}
	for i := range gold {
		if pred[i] != gold[i] {
			misses++
		}
	}
	return float64(len(gold)-misses) / float64(len(gold)), misses, nil
}

func argmax(p []float64) int {
	best := 0
	for i, v := range p {
		if v > p[best] {
			best = i
		}
	}
	return best
}

func uniqueStrings(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	var out []string
	for _, s := range ss {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
