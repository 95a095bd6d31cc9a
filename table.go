package conjug

// PersonForm is one labelled cell of a personal tense. A nil Form means
// the person has no form in this tense.
type PersonForm struct {
	Label string  `json:"label"`
	Form  *string `json:"form"`
}

// TenseForms holds the output of one tense: a single Form for invariant
// tenses, or labelled Persons when Personal is set.
type TenseForms struct {
	Name     string       `json:"tense"`
	Personal bool         `json:"personal"`
	Form     *string      `json:"form"`
	Persons  []PersonForm `json:"persons,omitempty"`
}

// MoodForms groups tense outputs in template order.
type MoodForms struct {
	Name   string       `json:"mood"`
	Tenses []TenseForms `json:"tenses"`
}

// Table is a synthesized conjugation table.
type Table struct {
	Moods []MoodForms `json:"moods"`
}

// ConjugatedVerb is the result of a conjugation.
type ConjugatedVerb struct {
	Infinitive    string        `json:"infinitive"`
	Root          string        `json:"root"`
	TemplateKey   string        `json:"template"`
	Language      Language      `json:"language"`
	SubjectFormat SubjectFormat `json:"subject"`
	// Predicted is true when the template came from the classifier.
	Predicted bool `json:"predicted"`
	// ConfidenceScore is set only for predicted templates.
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	Table           *Table   `json:"conjugation"`
}

// Row is one flattened cell of a table. Label is empty and Personal is
// false for invariant tenses.
type Row struct {
	Mood     string
	Tense    string
	Personal bool
	Label    string
	Form     *string
}

// Iterate flattens the table into rows in table order.
func (t *Table) Iterate() []Row {
	if t == nil {
		return nil
	}
	var rows []Row
	for _, m := range t.Moods {
		for _, tf := range m.Tenses {
			if !tf.Personal {
				rows = append(rows, Row{Mood: m.Name, Tense: tf.Name, Form: tf.Form})
				continue
			}
			for _, p := range tf.Persons {
				rows = append(rows, Row{Mood: m.Name, Tense: tf.Name, Personal: true, Label: p.Label, Form: p.Form})
			}
		}
	}
	return rows
}

// Tense returns the output of mood/tense, or nil.
func (t *Table) Tense(mood, tense string) *TenseForms {
	if t == nil {
		return nil
	}
	for i := range t.Moods {
		if t.Moods[i].Name != mood {
			continue
		}
		for j := range t.Moods[i].Tenses {
			if t.Moods[i].Tenses[j].Name == tense {
				return &t.Moods[i].Tenses[j]
			}
		}
	}
	return nil
}

// Lookup returns the form of mood/tense/label. Invariant tenses ignore
// label. found is false when the cell does not exist; a cell that exists
// without a form returns found=true and form=nil.
func (t *Table) Lookup(mood, tense, label string) (form *string, found bool) {
	tf := t.Tense(mood, tense)
	if tf == nil {
		return nil, false
	}
	if !tf.Personal {
		return tf.Form, true
	}
	for _, p := range tf.Persons {
		if p.Label == label {
			return p.Form, true
		}
	}
	return nil, false
}

// Len returns the number of tenses in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, m := range t.Moods {
		n += len(m.Tenses)
	}
	return n
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{Moods: make([]MoodForms, len(t.Moods))}
	for i, m := range t.Moods {
		nm := MoodForms{Name: m.Name, Tenses: make([]TenseForms, len(m.Tenses))}
		for j, tf := range m.Tenses {
			ntf := TenseForms{Name: tf.Name, Personal: tf.Personal, Form: cloneString(tf.Form)}
			if tf.Persons != nil {
				ntf.Persons = make([]PersonForm, len(tf.Persons))
				for k, p := range tf.Persons {
					ntf.Persons[k] = PersonForm{Label: p.Label, Form: cloneString(p.Form)}
				}
			}
			nm.Tenses[j] = ntf
		}
		out.Moods[i] = nm
	}
	return out
}

// Clone returns a deep copy of v.
func (v *ConjugatedVerb) Clone() *ConjugatedVerb {
	if v == nil {
		return nil
	}
	out := *v
	if v.ConfidenceScore != nil {
		c := *v.ConfidenceScore
		out.ConfidenceScore = &c
	}
	out.Table = v.Table.Clone()
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Iterate flattens the conjugation table; see Table.Iterate.
func (v *ConjugatedVerb) Iterate() []Row { return v.Table.Iterate() }

// Lookup returns one cell of the conjugation table; see Table.Lookup.
func (v *ConjugatedVerb) Lookup(mood, tense, label string) (*string, bool) {
	return v.Table.Lookup(mood, tense, label)
}

// Len returns the number of tenses in the conjugation table.
func (v *ConjugatedVerb) Len() int { return v.Table.Len() }
