// Command server exposes the conjugation engines as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/conjugate?verb=<word>&lang=<code>[&subject=abbrev|pronoun]
//	POST /api/conjugate/batch   body: {"lang":"fr","subject":"abbrev","verbs":["..."]}
//	GET  /api/admissible?verb=<word>&lang=<code>
//	GET  /api/languages
//	GET  /health
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) and the
// environment.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	conjug "github.com/cours-de-latin/conjug"
	"github.com/cours-de-latin/conjug/internal/app"
	"github.com/cours-de-latin/conjug/internal/config"
	"github.com/cours-de-latin/conjug/internal/transport/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)
	logger.Info("starting", slog.String("version", app.BuildVersion()))

	handler, err := newHandler(cfg, logger, os.DirFS(cfg.Data.Dir), modelsFS(cfg.Data.ModelsDir))
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func modelsFS(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil
	}
	return os.DirFS(dir)
}

// newHandler loads every configured language and wraps the API in the
// middleware chain.
func newHandler(cfg *config.Config, logger *slog.Logger, data, models fs.FS) (http.Handler, error) {
	subject, err := conjug.ParseSubjectFormat(cfg.Engine.SubjectFormat)
	if err != nil {
		return nil, err
	}
	conj, err := conjug.LoadConjugator(cfg.Data.LanguageList(), conjug.LoadOptions{
		Data:         data,
		Models:       models,
		RequireModel: cfg.Data.RequireModel,
		Logger:       logger,
		Options: []conjug.Option{
			conjug.WithCacheSize(cfg.Engine.CacheSize),
			conjug.WithWorkers(cfg.Engine.Workers),
		},
	})
	if err != nil {
		return nil, err
	}

	a := &api{
		conj:     conj,
		log:      logger,
		subject:  subject,
		maxBatch: cfg.Engine.MaxBatch,
		version:  app.Version,
	}
	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)
	return chain(a.routes()), nil
}
