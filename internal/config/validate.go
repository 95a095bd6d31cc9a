package config

import (
	"fmt"
	"strings"

	conjug "github.com/cours-de-latin/conjug"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		return fmt.Errorf("data.dir must not be empty")
	}

	langs := c.Data.LanguageList()
	if len(langs) == 0 {
		return fmt.Errorf("data.languages must list at least one language")
	}
	for _, code := range langs {
		if _, err := conjug.ParseLanguage(code); err != nil {
			return fmt.Errorf("data.languages: %w", err)
		}
	}
	if c.Data.RequireModel && strings.TrimSpace(c.Data.ModelsDir) == "" {
		return fmt.Errorf("data.models_dir is required when data.require_model is set")
	}

	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if e.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", e.CacheSize)
	}
	if e.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", e.Workers)
	}
	if e.MaxBatch <= 0 {
		return fmt.Errorf("max_batch must be > 0 (got %d)", e.MaxBatch)
	}
	if _, err := conjug.ParseSubjectFormat(e.SubjectFormat); err != nil {
		return fmt.Errorf("subject_format: %w", err)
	}
	return nil
}
