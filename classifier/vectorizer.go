package classifier

import "sort"

// vocabulary maps feature tokens to dense column indices.
type vocabulary struct {
	terms []string
	index map[string]int
}

func newVocabulary(terms []string) *vocabulary {
	v := &vocabulary{terms: terms, index: make(map[string]int, len(terms))}
	for i, t := range terms {
		v.index[t] = i
	}
	return v
}

// fitVocabulary collects every token seen in docs, sorted.
func fitVocabulary(docs [][]string) *vocabulary {
	seen := make(map[string]struct{})
	for _, d := range docs {
		for _, tok := range d {
			seen[tok] = struct{}{}
		}
	}
	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return newVocabulary(terms)
}

// transform returns the sorted, de-duplicated column indices present in
// doc. Unknown tokens are dropped; presence is binary.
func (v *vocabulary) transform(doc []string) []int {
	cols := make([]int, 0, len(doc))
	seen := make(map[int]struct{}, len(doc))
	for _, tok := range doc {
		j, ok := v.index[tok]
		if !ok {
			continue
		}
		if _, dup := seen[j]; dup {
			continue
		}
		seen[j] = struct{}{}
		cols = append(cols, j)
	}
	sort.Ints(cols)
	return cols
}

func (v *vocabulary) transformAll(docs [][]string) [][]int {
	out := make([][]int, len(docs))
	for i, d := range docs {
		out[i] = v.transform(d)
	}
	return out
}

// subset keeps only the given columns, in order.
func (v *vocabulary) subset(cols []int) *vocabulary {
	terms := make([]string, len(cols))
	for i, j := range cols {
		terms[i] = v.terms[j]
	}
	return newVocabulary(terms)
}
