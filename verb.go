package conjug

import "strings"

// TemplateSeparator splits a template key into its stem part and its
// invariant ending, e.g. "man:ger".
const TemplateSeparator = ":"

// VerbEntry is a dictionary verb with its conjugation template.
type VerbEntry struct {
	Infinitive  string `json:"infinitive"`
	Root        string `json:"root"`
	TemplateKey string `json:"template"`
}

// templateEnding returns the substring after the separator, or "" when the
// key has no separator.
func templateEnding(key string) string {
	idx := strings.Index(key, TemplateSeparator)
	if idx < 0 {
		return ""
	}
	return key[idx+len(TemplateSeparator):]
}

// RootOffset returns the (non-positive) rune offset at which the root of an
// infinitive ends for the given template.
func RootOffset(templateKey string) int {
	return -len([]rune(templateEnding(templateKey)))
}

// RootOf strips the template ending length from infinitive. An offset of
// zero (whole-word irregular templates) leaves the infinitive unchanged.
// Words shorter than the ending yield an empty root.
func RootOf(infinitive, templateKey string) string {
	offset := RootOffset(templateKey)
	if offset == 0 {
		return infinitive
	}
	runes := []rune(infinitive)
	end := len(runes) + offset
	if end < 0 {
		end = 0
	}
	return string(runes[:end])
}

// NewVerbEntry builds a VerbEntry, deriving the root when root is empty.
func NewVerbEntry(infinitive, root, templateKey string) VerbEntry {
	if root == "" {
		root = RootOf(infinitive, templateKey)
	}
	return VerbEntry{Infinitive: infinitive, Root: root, TemplateKey: templateKey}
}
