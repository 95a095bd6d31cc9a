package classifier

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// DefaultSeed seeds every shuffle so that splits are reproducible.
const DefaultSeed uint64 = 42

// Split defaults.
const (
	DefaultThreshold  = 8
	DefaultProportion = 0.5
)

// Sample is a (word, template) training pair.
type Sample struct {
	Word     string
	Template string
}

// DataSet holds the known verbs of a language and partitions them into
// training and test sets.
type DataSet struct {
	// Templates lists every template key in sorted order.
	Templates []string
	// Verbs lists every verb in shuffled order; Labels holds the matching
	// template indices into Templates.
	Verbs  []string
	Labels []int

	// buckets maps template → verbs (shuffled order); bucketOrder lists
	// templates in first-seen order.
	buckets     map[string][]string
	bucketOrder []string

	Train []Sample
	Test  []Sample
}

// NewDataSet builds a data set from infinitive → template pairs.
func NewDataSet(verbTemplates map[string]string) *DataSet {
	items := make([]Sample, 0, len(verbTemplates))
	for v, t := range verbTemplates {
		items = append(items, Sample{Word: v, Template: t})
	}
	// Map order is random; sort before the seeded shuffle.
	sort.Slice(items, func(i, j int) bool { return items[i].Word < items[j].Word })
	shuffle(items, DefaultSeed)

	ds := &DataSet{
		Templates: uniqueSorted(items),
		Verbs:     make([]string, 0, len(items)),
		Labels:    make([]int, 0, len(items)),
		buckets:   make(map[string][]string),
	}
	index := make(map[string]int, len(ds.Templates))
	for i, t := range ds.Templates {
		index[t] = i
	}
	for _, it := range items {
		ds.Verbs = append(ds.Verbs, it.Word)
		ds.Labels = append(ds.Labels, index[it.Template])
		if _, ok := ds.buckets[it.Template]; !ok {
			ds.bucketOrder = append(ds.bucketOrder, it.Template)
		}
		ds.buckets[it.Template] = append(ds.buckets[it.Template], it.Word)
	}
	return ds
}

// Split partitions the data. Templates with at most threshold verbs go
// entirely to the training set; larger ones send round(len*proportion)
// verbs to training and the rest to test. Both sets are then shuffled.
func (ds *DataSet) Split(threshold int, proportion float64) error {
	if proportion <= 0 || proportion > 1 {
		return fmt.Errorf("split proportion must be in (0, 1], got %v", proportion)
	}
	ds.Train, ds.Test = nil, nil
	for _, t := range ds.bucketOrder {
		verbs := ds.buckets[t]
		cut := len(verbs)
		if len(verbs) > threshold {
			cut = int(math.RoundToEven(float64(len(verbs)) * proportion))
		}
		for _, v := range verbs[:cut] {
			ds.Train = append(ds.Train, Sample{Word: v, Template: t})
		}
		for _, v := range verbs[cut:] {
			ds.Test = append(ds.Test, Sample{Word: v, Template: t})
		}
	}
	shuffle(ds.Train, DefaultSeed)
	shuffle(ds.Test, DefaultSeed)
	return nil
}

// Words returns the words of samples.
func Words(samples []Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Word
	}
	return out
}

// TemplatesOf returns the template labels of samples.
func TemplatesOf(samples []Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Template
	}
	return out
}

func shuffle[T any](s []T, seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func uniqueSorted(items []Sample) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		if _, ok := seen[it.Template]; ok {
			continue
		}
		seen[it.Template] = struct{}{}
		out = append(out, it.Template)
	}
	sort.Strings(out)
	return out
}
