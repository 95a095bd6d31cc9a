package classifier

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFeatures(t *testing.T) {
	got := ExtractFeatures("Manger", "fr", NgramRange{Min: 2, Max: 3})
	want := []string{
		"END=er", "END=ger",
		"START=ma", "START=man",
		"LEN=6", "VOW_NUM=2", "CONS_NUM=4", "V/C=0.5",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFeaturesShortWord(t *testing.T) {
	got := ExtractFeatures("a", "en", DefaultNgramRange)
	assert.Equal(t, []string{"LEN=1", "VOW_NUM=1", "CONS_NUM=0", "V/C=N/A"}, got)
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "1.0", formatRatio(1))
	assert.Equal(t, "0.67", formatRatio(2.0/3.0))
	assert.Equal(t, "2.5", formatRatio(2.5))
}

// corpus is a small separable set: the template follows the ending.
func corpus() map[string]string {
	m := map[string]string{}
	for _, w := range []string{
		"parler", "chanter", "danser", "marcher", "aimer", "donner", "jouer",
		"porter", "monter", "penser", "regarder", "tomber", "laver", "fermer",
	} {
		m[w] = "aim:er"
	}
	for _, w := range []string{
		"finir", "choisir", "grandir", "rougir", "punir", "remplir", "bâtir",
		"réussir", "agir", "saisir", "nourrir", "guérir",
	} {
		m[w] = "fin:ir"
	}
	for _, w := range []string{"vendre", "rendre", "attendre", "perdre", "tondre", "mordre"} {
		m[w] = "ten:dre"
	}
	return m
}

func TestDataSetSplitDeterministic(t *testing.T) {
	a := NewDataSet(corpus())
	b := NewDataSet(corpus())
	require.NoError(t, a.Split(DefaultThreshold, DefaultProportion))
	require.NoError(t, b.Split(DefaultThreshold, DefaultProportion))

	assert.Equal(t, a.Verbs, b.Verbs)
	assert.Equal(t, a.Train, b.Train)
	assert.Equal(t, a.Test, b.Test)
	assert.Equal(t, []string{"aim:er", "fin:ir", "ten:dre"}, a.Templates)

	// 14 -er → 7/7, 12 -ir → 6/6, 6 -dre stay in train.
	assert.Len(t, a.Train, 7+6+6)
	assert.Len(t, a.Test, 7+6)
	for _, s := range a.Test {
		assert.NotEqual(t, "ten:dre", s.Template, "small template leaked into test: %s", s.Word)
	}
}

func TestDataSetSplitProportion(t *testing.T) {
	ds := NewDataSet(corpus())
	for _, p := range []float64{0, -0.5, 1.5} {
		assert.Error(t, ds.Split(DefaultThreshold, p), "proportion %v", p)
	}
	require.NoError(t, ds.Split(DefaultThreshold, 1))
	assert.Empty(t, ds.Test)
	assert.Len(t, ds.Train, len(corpus()))
}

func trained(t *testing.T) *Model {
	t.Helper()
	ds := NewDataSet(corpus())
	m := NewModel(DefaultConfig("fr"))
	require.NoError(t, m.Train(ds.Verbs, labelsOf(ds)))
	return m
}

func labelsOf(ds *DataSet) []string {
	out := make([]string, len(ds.Labels))
	for i, l := range ds.Labels {
		out[i] = ds.Templates[l]
	}
	return out
}

func TestTrainPredict(t *testing.T) {
	m := trained(t)
	require.True(t, m.Trained())
	assert.Equal(t, []string{"aim:er", "fin:ir", "ten:dre"}, m.Classes)

	samples := make([]Sample, 0)
	for w, tpl := range corpus() {
		samples = append(samples, Sample{Word: w, Template: tpl})
	}
	rep, err := m.Score(samples)
	require.NoError(t, err)
	t.Logf("training accuracy %.3f, misses %v", rep.Accuracy, rep.Misses)
	assert.GreaterOrEqual(t, rep.Accuracy, 0.8)

	probs, err := m.PredictProba([]string{"blogger"})
	require.NoError(t, err)
	require.Len(t, probs, 1)
	var sum float64
	for _, p := range probs[0] {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestTrainDeterministic(t *testing.T) {
	a, b := trained(t), trained(t)
	assert.Equal(t, a.Vocabulary, b.Vocabulary)
	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.Bias, b.Bias)
}

func TestTrainErrors(t *testing.T) {
	m := NewModel(DefaultConfig("fr"))
	assert.Error(t, m.Train([]string{"a"}, nil))
	assert.Error(t, m.Train(nil, nil))

	_, _, err := m.Classify("parler")
	assert.ErrorIs(t, err, ErrNotTrained)
	_, err = m.Predict([]string{"parler"})
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestEvaluate(t *testing.T) {
	acc, misses, err := Evaluate([]string{"a", "b", "c", "d"}, []string{"a", "x", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, 0.75, acc)
	assert.Equal(t, 1, misses)

	_, _, err = Evaluate([]string{"a"}, nil)
	assert.Error(t, err)
}

func TestArtifactRoundTrip(t *testing.T) {
	m := trained(t)

	var buf bytes.Buffer
	require.NoError(t, m.WriteArtifact(&buf))
	fsys := fstest.MapFS{ArtifactName("fr"): {Data: buf.Bytes()}}

	loaded, err := Load(fsys, "fr")
	require.NoError(t, err)

	for _, w := range []string{"parler", "finir", "vendre", "blogger", "zapper"} {
		wantTpl, wantP, err := m.Classify(w)
		require.NoError(t, err)
		gotTpl, gotP, err := loaded.Classify(w)
		require.NoError(t, err)
		assert.Equal(t, wantTpl, gotTpl, w)
		assert.InDelta(t, wantP, gotP, 1e-12, w)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "fr")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadWrongLanguage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, trained(t).WriteArtifact(&buf))
	_, err := Load(fstest.MapFS{ArtifactName("es"): {Data: buf.Bytes()}}, "es")
	assert.Error(t, err)
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path, err := trained(t).SaveFile(dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
