package conjug

// EntryKind tells how a tense stores its inflections.
type EntryKind int

const (
	// EntryEmpty is a tense declared without any inflection data.
	EntryEmpty EntryKind = iota
	// EntryInvariant is a single suffix shared by all persons.
	EntryInvariant
	// EntryPersons is an ordered list of per-person slots.
	EntryPersons
)

// PersonSlot is one person of a personal tense.
type PersonSlot struct {
	// Index is the position of the slot in the source data (0-based).
	Index int
	// Suffix is the ending appended to the root. It may be empty.
	Suffix string
	// Absent marks a person for which no form exists. Absent slots are
	// kept so the output can carry an explicit null.
	Absent bool
}

// InflectionEntry holds the endings of one tense.
type InflectionEntry struct {
	Kind EntryKind
	// Suffix is set for EntryInvariant.
	Suffix string
	// Persons is set for EntryPersons.
	Persons []PersonSlot
}

// Tense is a named inflection entry.
type Tense struct {
	Name  string
	Entry InflectionEntry
}

// Mood groups tenses in declaration order.
type Mood struct {
	Name   string
	Tenses []Tense
}

// Template is a named inflection skeleton shared by every verb with the
// same conjugation pattern. Key looks like "man:ger": the part after the
// separator is the invariant ending stripped from infinitives.
type Template struct {
	Key   string
	Moods []Mood
}

// Clone returns a deep copy of t. Synthesis works on clones so that no two
// callers ever share slices.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	out := &Template{Key: t.Key, Moods: make([]Mood, len(t.Moods))}
	for i, m := range t.Moods {
		nm := Mood{Name: m.Name, Tenses: make([]Tense, len(m.Tenses))}
		for j, tn := range m.Tenses {
			e := tn.Entry
			if e.Persons != nil {
				e.Persons = append([]PersonSlot(nil), e.Persons...)
			}
			nm.Tenses[j] = Tense{Name: tn.Name, Entry: e}
		}
		out.Moods[i] = nm
	}
	return out
}

// Mood returns the mood named name, or nil.
func (t *Template) Mood(name string) *Mood {
	for i := range t.Moods {
		if t.Moods[i].Name == name {
			return &t.Moods[i]
		}
	}
	return nil
}

// Tense returns the tense named name within m, or nil.
func (m *Mood) Tense(name string) *Tense {
	for i := range m.Tenses {
		if m.Tenses[i].Name == name {
			return &m.Tenses[i]
		}
	}
	return nil
}

// Ending returns the invariant ending encoded in the template key.
func (t *Template) Ending() string {
	return templateEnding(t.Key)
}
