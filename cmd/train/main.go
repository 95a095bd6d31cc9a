// Command train fits a template classifier for each language and writes
// trained_model-<lang>.zip artifacts for the server to load.
//
// Usage:
//
//	train -data data -out models -lang fr,en -split 0.8
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	conjug "github.com/cours-de-latin/conjug"
	"github.com/cours-de-latin/conjug/classifier"
	"github.com/cours-de-latin/conjug/internal/app"
	"github.com/cours-de-latin/conjug/internal/config"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding verbs-<lang> and conjugation-<lang> files")
	outDir := flag.String("out", "models", "directory receiving the model artifacts")
	langs := flag.String("lang", "fr,en,es,it,pt,ro", "comma-separated language codes")
	split := flag.Float64("split", 0.8, "share of each large template kept for training, in (0, 1]")
	threshold := flag.Int("threshold", classifier.DefaultThreshold, "templates with at most this many verbs train on all of them")
	epochs := flag.Int("epochs", 0, "SGD epochs (0 keeps the default)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger := app.NewLogger(config.LogConfig{Level: *logLevel, Format: "text"})

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("create output dir", slog.Any("error", err))
		os.Exit(1)
	}

	job := trainJob{
		data:      os.DirFS(*dataDir),
		outDir:    *outDir,
		split:     *split,
		threshold: *threshold,
		epochs:    *epochs,
		log:       logger,
	}

	var g errgroup.Group
	for _, code := range strings.Split(*langs, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		g.Go(func() error { return job.run(code) })
	}
	if err := g.Wait(); err != nil {
		logger.Error("training failed", slog.Any("error", err))
		os.Exit(1)
	}
}

type trainJob struct {
	data      fs.FS
	outDir    string
	split     float64
	threshold int
	epochs    int
	log       *slog.Logger
}

func (j trainJob) run(code string) error {
	lang, err := conjug.ParseLanguage(code)
	if err != nil {
		return err
	}
	log := j.log.With(slog.String("lang", string(lang)))

	store, err := conjug.LoadStore(j.data, lang)
	if err != nil {
		return fmt.Errorf("%s: %w", lang, err)
	}

	ds := classifier.NewDataSet(store.VerbTemplates())
	if err := ds.Split(j.threshold, j.split); err != nil {
		return fmt.Errorf("%s: %w", lang, err)
	}
	log.Info("dataset ready",
		slog.Int("verbs", len(ds.Verbs)),
		slog.Int("templates", len(ds.Templates)),
		slog.Int("train", len(ds.Train)),
		slog.Int("test", len(ds.Test)),
	)

	cfg := classifier.DefaultConfig(string(lang))
	if j.epochs > 0 {
		cfg.Epochs = j.epochs
	}
	model := classifier.NewModel(cfg)
	if err := model.Train(classifier.Words(ds.Train), classifier.TemplatesOf(ds.Train)); err != nil {
		return fmt.Errorf("%s: train: %w", lang, err)
	}
	log.Info("model trained", slog.Int("features", len(model.Vocabulary)), slog.Int("classes", len(model.Classes)))

	if len(ds.Test) > 0 {
		pred, err := model.Predict(classifier.Words(ds.Test))
		if err != nil {
			return fmt.Errorf("%s: predict: %w", lang, err)
		}
		acc, misses, err := classifier.Evaluate(pred, classifier.TemplatesOf(ds.Test))
		if err != nil {
			return fmt.Errorf("%s: evaluate: %w", lang, err)
		}
		log.Info("held-out evaluation", slog.Float64("accuracy", acc), slog.Int("misses", misses))
	}

	path, err := model.SaveFile(j.outDir)
	if err != nil {
		return fmt.Errorf("%s: %w", lang, err)
	}
	log.Info("model saved", slog.String("path", path))
	return nil
}
