package conjug

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// dataExtensions lists the accepted encodings in lookup order.
var dataExtensions = []string{".json", ".yaml", ".yml", ".xml"}

// VerbsFile returns the base name of the verbs file for lang.
func VerbsFile(lang Language) string { return "verbs-" + string(lang) }

// ConjugationsFile returns the base name of the conjugations file for lang.
func ConjugationsFile(lang Language) string { return "conjugation-" + string(lang) }

// LoadStore reads verbs-<lang>.* and conjugation-<lang>.* from fsys and
// builds a TemplateStore. JSON, YAML and Verbiste XML encodings are
// accepted; the first existing file in dataExtensions order wins.
func LoadStore(fsys fs.FS, lang Language) (*TemplateStore, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(lang))
	}

	verbsPath, verbsData, err := readData(fsys, VerbsFile(lang))
	if err != nil {
		return nil, err
	}
	verbs, err := parseVerbs(verbsPath, verbsData)
	if err != nil {
		return nil, err
	}

	conjPath, conjData, err := readData(fsys, ConjugationsFile(lang))
	if err != nil {
		return nil, err
	}
	templates, err := parseTemplates(conjPath, conjData)
	if err != nil {
		return nil, err
	}

	return NewTemplateStore(lang, verbs, templates)
}

// readData returns the path and contents of the first base+ext file found.
func readData(fsys fs.FS, base string) (string, []byte, error) {
	for _, ext := range dataExtensions {
		p := base + ext
		data, err := fs.ReadFile(fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("read %s: %w", p, err)
		}
		return p, data, nil
	}
	return "", nil, fmt.Errorf("open %s.{json,yaml,yml,xml}: %w", base, fs.ErrNotExist)
}

func parseVerbs(p string, data []byte) ([]VerbEntry, error) {
	if path.Ext(p) == ".xml" {
		return parseVerbsXML(p, data)
	}
	return parseVerbsTree(p, data)
}

func parseTemplates(p string, data []byte) ([]*Template, error) {
	if path.Ext(p) == ".xml" {
		return parseTemplatesXML(p, data)
	}
	return parseTemplatesTree(p, data)
}

// ---- JSON / YAML ----------------------------------------------------------

// documentRoot unmarshals data into a yaml.Node tree and returns the
// top-level mapping. yaml.v3 reads JSON as well and, unlike a Go map,
// keeps key order.
func documentRoot(p string, data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse %s: empty document", p)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse %s: line %d: top level must be a mapping", p, root.Line)
	}
	return root, nil
}

func parseVerbsTree(p string, data []byte) ([]VerbEntry, error) {
	root, err := documentRoot(p, data)
	if err != nil {
		return nil, err
	}
	verbs := make([]VerbEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var info struct {
			Template string `yaml:"template"`
			Root     string `yaml:"root"`
		}
		if err := val.Decode(&info); err != nil {
			return nil, fmt.Errorf("parse %s: verb %q: %w", p, key.Value, err)
		}
		if info.Template == "" {
			return nil, fmt.Errorf("parse %s: line %d: verb %q has no template", p, key.Line, key.Value)
		}
		verbs = append(verbs, NewVerbEntry(key.Value, info.Root, info.Template))
	}
	return verbs, nil
}

func parseTemplatesTree(p string, data []byte) ([]*Template, error) {
	root, err := documentRoot(p, data)
	if err != nil {
		return nil, err
	}
	templates := make([]*Template, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, moods := root.Content[i], root.Content[i+1]
		if moods.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parse %s: line %d: template %q must map moods", p, moods.Line, key.Value)
		}
		t := &Template{Key: key.Value}
		for j := 0; j+1 < len(moods.Content); j += 2 {
			moodKey, tenses := moods.Content[j], moods.Content[j+1]
			if tenses.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("parse %s: line %d: mood %q must map tenses", p, tenses.Line, moodKey.Value)
			}
			m := Mood{Name: moodKey.Value}
			for k := 0; k+1 < len(tenses.Content); k += 2 {
				tenseKey := tenses.Content[k]
				entry, err := parseEntryNode(tenses.Content[k+1])
				if err != nil {
					return nil, fmt.Errorf("parse %s: %s/%s/%s: %w", p, t.Key, m.Name, tenseKey.Value, err)
				}
				m.Tenses = append(m.Tenses, Tense{Name: tenseKey.Value, Entry: entry})
			}
			t.Moods = append(t.Moods, m)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// parseEntryNode decodes a tense value: null, a suffix string, or a list
// of persons. Persons are either [index, suffix|null] pairs or bare
// suffixes (index = position).
func parseEntryNode(n *yaml.Node) (InflectionEntry, error) {
	switch {
	case isNull(n):
		return InflectionEntry{Kind: EntryEmpty}, nil
	case n.Kind == yaml.ScalarNode:
		return InflectionEntry{Kind: EntryInvariant, Suffix: n.Value}, nil
	case n.Kind != yaml.SequenceNode:
		return InflectionEntry{}, fmt.Errorf("line %d: unexpected node", n.Line)
	}

	entry := InflectionEntry{Kind: EntryPersons, Persons: make([]PersonSlot, 0, len(n.Content))}
	for pos, item := range n.Content {
		slot := PersonSlot{Index: pos}
		val := item
		if item.Kind == yaml.SequenceNode {
			if len(item.Content) != 2 {
				return InflectionEntry{}, fmt.Errorf("line %d: person must be [index, suffix]", item.Line)
			}
			idx, err := strconv.Atoi(item.Content[0].Value)
			if err != nil {
				return InflectionEntry{}, fmt.Errorf("line %d: person index: %w", item.Line, err)
			}
			slot.Index = idx
			val = item.Content[1]
		}
		if isNull(val) {
			slot.Absent = true
		} else {
			slot.Suffix = val.Value
		}
		entry.Persons = append(entry.Persons, slot)
	}
	return entry, nil
}

// ---- Verbiste XML ---------------------------------------------------------

type xmlVerbs struct {
	Verbs []struct {
		Infinitive string `xml:"i"`
		Template   string `xml:"t"`
	} `xml:"v"`
}

// xmlNode is a generic element; the conjugation schema uses element names
// as mood and tense names, so it cannot be decoded into fixed structs.
type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []xmlNode  `xml:",any"`
	Text    string     `xml:",chardata"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// child returns the first child element named name, or nil.
func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

func parseVerbsXML(p string, data []byte) ([]VerbEntry, error) {
	var doc xmlVerbs
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	verbs := make([]VerbEntry, 0, len(doc.Verbs))
	for _, v := range doc.Verbs {
		inf := strings.TrimSpace(v.Infinitive)
		tpl := strings.TrimSpace(v.Template)
		if inf == "" || tpl == "" {
			return nil, fmt.Errorf("parse %s: verb entry needs <i> and <t>", p)
		}
		verbs = append(verbs, NewVerbEntry(inf, "", tpl))
	}
	return verbs, nil
}

func parseTemplatesXML(p string, data []byte) ([]*Template, error) {
	var doc xmlNode
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p, err)
	}
	var templates []*Template
	for _, tn := range doc.Nodes {
		if tn.XMLName.Local != "template" {
			continue
		}
		name := tn.attr("name")
		if name == "" {
			return nil, fmt.Errorf("parse %s: template without name", p)
		}
		t := &Template{Key: name}
		for _, mn := range tn.Nodes {
			m := Mood{Name: mn.XMLName.Local}
			for _, ten := range mn.Nodes {
				m.Tenses = append(m.Tenses, Tense{
					Name:  strings.ReplaceAll(ten.XMLName.Local, "-", " "),
					Entry: xmlEntry(&ten),
				})
			}
			t.Moods = append(t.Moods, m)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// xmlEntry converts the <p> children of a tense element. Only the first
// <i> of a <p> is used. A lone <p> whose <i> has no text is an empty
// entry; inside a person list the same element is an empty suffix.
func xmlEntry(tense *xmlNode) InflectionEntry {
	var persons []*xmlNode
	for i := range tense.Nodes {
		if tense.Nodes[i].XMLName.Local == "p" {
			persons = append(persons, &tense.Nodes[i])
		}
	}
	switch len(persons) {
	case 0:
		return InflectionEntry{Kind: EntryEmpty}
	case 1:
		i := persons[0].child("i")
		if i == nil || i.Text == "" {
			return InflectionEntry{Kind: EntryEmpty}
		}
		return InflectionEntry{Kind: EntryInvariant, Suffix: strings.TrimSpace(i.Text)}
	}
	entry := InflectionEntry{Kind: EntryPersons, Persons: make([]PersonSlot, 0, len(persons))}
	for idx, pn := range persons {
		slot := PersonSlot{Index: idx}
		if i := pn.child("i"); i != nil {
			slot.Suffix = strings.TrimSpace(i.Text)
		} else {
			slot.Absent = true
		}
		entry.Persons = append(entry.Persons, slot)
	}
	return entry
}
