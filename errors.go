package conjug

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine. Compare with errors.Is.
var (
	ErrUnsupportedLanguage    = errors.New("unsupported language")
	ErrInvalidVerbForm        = errors.New("invalid verb form")
	ErrNoModelAvailable       = errors.New("no conjugation model available")
	ErrNoConjugationAvailable = errors.New("no conjugation available")
	ErrUnknownTemplate        = errors.New("unknown template")
)

// VerbError ties a sentinel error to the word and language that caused it.
type VerbError struct {
	Word     string
	Language Language
	Err      error
}

func (e *VerbError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Word, e.Language, e.Err)
}

func (e *VerbError) Unwrap() error { return e.Err }

func verbError(word string, lang Language, err error) *VerbError {
	return &VerbError{Word: word, Language: lang, Err: err}
}
