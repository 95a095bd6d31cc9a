package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Engine EngineConfig `yaml:"engine"`
	Log    LogConfig    `yaml:"log"`
	CORS   CORSConfig   `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DataConfig locates the template tables and trained models.
type DataConfig struct {
	Dir          string `yaml:"dir"           env:"DATA_DIR"           env-default:"data"`
	Languages    string `yaml:"languages"     env:"DATA_LANGUAGES"     env-default:"fr,en,es,it,pt,ro"`
	ModelsDir    string `yaml:"models_dir"    env:"DATA_MODELS_DIR"    env-default:"models"`
	RequireModel bool   `yaml:"require_model" env:"DATA_REQUIRE_MODEL" env-default:"false"`
}

// LanguageList splits Languages on commas, dropping blanks.
func (d DataConfig) LanguageList() []string {
	return splitList(d.Languages)
}

// EngineConfig tunes the conjugation engines.
type EngineConfig struct {
	CacheSize     int    `yaml:"cache_size"     env:"ENGINE_CACHE_SIZE"     env-default:"1024"`
	Workers       int    `yaml:"workers"        env:"ENGINE_WORKERS"        env-default:"0"`
	SubjectFormat string `yaml:"subject_format" env:"ENGINE_SUBJECT_FORMAT" env-default:"abbrev"`
	MaxBatch      int    `yaml:"max_batch"      env:"ENGINE_MAX_BATCH"      env-default:"500"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// Origins returns AllowedOrigins as a list.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

// Methods returns AllowedMethods as a list.
func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

// Headers returns AllowedHeaders as a list.
func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
