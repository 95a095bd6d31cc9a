package classifier

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ArtifactName is the file name of the packaged model for lang.
func ArtifactName(lang string) string {
	return "trained_model-" + lang + ".zip"
}

func entryName(lang string) string {
	return "trained_model-" + lang + ".json"
}

// WriteArtifact packages the model as a zip archive holding one JSON
// document.
func (m *Model) WriteArtifact(w io.Writer) error {
	if !m.Trained() {
		return ErrNotTrained
	}
	zw := zip.NewWriter(w)
	f, err := zw.Create(entryName(m.Language()))
	if err != nil {
		return fmt.Errorf("classifier: create entry: %w", err)
	}
	if err := json.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("classifier: encode model: %w", err)
	}
	return zw.Close()
}

// SaveFile writes the artifact into dir and returns its path.
func (m *Model) SaveFile(dir string) (string, error) {
	var buf bytes.Buffer
	if err := m.WriteArtifact(&buf); err != nil {
		return "", err
	}
	path := filepath.Join(dir, ArtifactName(m.Language()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("classifier: write %s: %w", path, err)
	}
	return path, nil
}

// ReadArtifact decodes a model archive.
func ReadArtifact(r io.ReaderAt, size int64) (*Model, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("classifier: open archive: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Ext(f.Name) != ".json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("classifier: open %s: %w", f.Name, err)
		}
		var m Model
		err = json.NewDecoder(rc).Decode(&m)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("classifier: decode %s: %w", f.Name, err)
		}
		if err := m.restore(); err != nil {
			return nil, err
		}
		return &m, nil
	}
	return nil, fmt.Errorf("classifier: archive holds no model")
}

// Load reads the artifact for lang from fsys. A missing artifact yields
// an error wrapping fs.ErrNotExist.
func Load(fsys fs.FS, lang string) (*Model, error) {
	data, err := fs.ReadFile(fsys, ArtifactName(lang))
	if err != nil {
		return nil, fmt.Errorf("classifier: read %s: %w", ArtifactName(lang), err)
	}
	m, err := ReadArtifact(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if m.Language() != lang {
		return nil, fmt.Errorf("classifier: %s holds a %q model", ArtifactName(lang), m.Language())
	}
	return m, nil
}
