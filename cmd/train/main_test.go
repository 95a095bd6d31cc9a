package main

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conjug "github.com/cours-de-latin/conjug"
	"github.com/cours-de-latin/conjug/classifier"
)

func TestTrainJob(t *testing.T) {
	out := t.TempDir()
	job := trainJob{
		data:      os.DirFS("../../testdata"),
		outDir:    out,
		split:     0.5,
		threshold: classifier.DefaultThreshold,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	require.NoError(t, job.run("default"))

	model, err := classifier.Load(os.DirFS(out), "fr")
	require.NoError(t, err)

	store, err := conjug.LoadStore(os.DirFS("../../testdata"), conjug.French)
	require.NoError(t, err)
	assert.ElementsMatch(t, store.TemplateKeys(), model.Classes)
}

func TestTrainJob_Errors(t *testing.T) {
	job := trainJob{
		data:   os.DirFS("../../testdata"),
		outDir: t.TempDir(),
		split:  0,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	assert.Error(t, job.run("fr"), "split must be positive")
	assert.Error(t, job.run("de"))
}
