package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the environment variable holding the YAML config path.
const PathEnv = "CONFIG_PATH"

// DefaultPath is read when PathEnv is unset. A missing default file is not
// an error: the server then runs on environment variables and defaults.
const DefaultPath = "./config.yaml"

// Load reads configuration with priority ENV > YAML > env-default tags.
// When a YAML file is read, relative data and model directories are
// resolved against its directory so a config can ship next to its tables.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := os.LookupEnv(PathEnv)
	if path == "" {
		path, explicit = DefaultPath, false
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg.Data.resolve(filepath.Dir(path))
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// resolve anchors relative directories at base.
func (d *DataConfig) resolve(base string) {
	for _, p := range []*string{&d.Dir, &d.ModelsDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
