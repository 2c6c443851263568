// Package config loads the YAML configuration file for pdfoutline runs.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/gemini"
	"github.com/fwojciec/pdfoutline/openai"
	"github.com/fwojciec/pdfoutline/outline"
	"gopkg.in/yaml.v3"
)

// Embedder types.
const (
	EmbedderTFIDF  = "tfidf"
	EmbedderGemini = "gemini"
	EmbedderOpenAI = "openai"
)

// Default locations.
const (
	DefaultInputDir   = "/app/input"
	DefaultOutputDir  = "/app/output"
	DefaultReportName = "challenge1b_output.json"
	DBEnv             = "PDFOUTLINE_DB"
)

// Config is the root configuration structure.
type Config struct {
	InputDir    string         `yaml:"input_dir"`
	OutputDir   string         `yaml:"output_dir"`
	ReportName  string         `yaml:"report_name"`
	Concurrency int            `yaml:"concurrency"`
	Outline     OutlineConfig  `yaml:"outline"`
	Rank        RankConfig     `yaml:"rank"`
	Embedder    EmbedderConfig `yaml:"embedder"`
	Cache       CacheConfig    `yaml:"cache"`
}

// OutlineConfig tunes the heading heuristic.
type OutlineConfig struct {
	CommonStyles     int     `yaml:"common_styles"`
	MaxHeadingLength int     `yaml:"max_heading_length"`
	TitleBand        float64 `yaml:"title_band"`
}

// Options converts the section into heuristic options.
func (c OutlineConfig) Options() outline.Options {
	return outline.Options{
		CommonStyles:     c.CommonStyles,
		MaxHeadingLength: c.MaxHeadingLength,
		TitleBand:        c.TitleBand,
	}
}

// RankConfig configures section ranking.
type RankConfig struct {
	Limit int `yaml:"limit"`
}

// EmbedderConfig selects and configures the text embedder.
type EmbedderConfig struct {
	Type   string       `yaml:"type"`
	Gemini GeminiConfig `yaml:"gemini"`
	OpenAI OpenAIConfig `yaml:"openai"`
}

// GeminiConfig configures the Gemini embedder.
type GeminiConfig struct {
	APIKeyEnv         string  `yaml:"api_key_env"`
	Model             string  `yaml:"model"`
	BatchSize         int     `yaml:"batch_size"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Attempts          uint    `yaml:"attempts"`
	RetryDelaySecs    float64 `yaml:"retry_delay_secs"`
	Dimensions        int32   `yaml:"dimensions"`
}

// APIKey returns the key from the configured environment variable.
func (c GeminiConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

// EmbedderConfig converts the section into embedder settings.
func (c GeminiConfig) EmbedderConfig() gemini.Config {
	return gemini.Config{
		Model:             c.Model,
		BatchSize:         c.BatchSize,
		RequestsPerSecond: c.RequestsPerSecond,
		Attempts:          c.Attempts,
		RetryDelay:        time.Duration(c.RetryDelaySecs * float64(time.Second)),
		Dimensions:        c.Dimensions,
	}
}

// OpenAIConfig configures the OpenAI-compatible embedder.
type OpenAIConfig struct {
	APIKeyEnv   string `yaml:"api_key_env"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	BatchSize   int    `yaml:"batch_size"`
	Dimensions  int64  `yaml:"dimensions"`
	MaxRetries  int    `yaml:"max_retries"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig converts the section into embedder settings, reading the
// API key from the configured environment variable.
func (c OpenAIConfig) EmbedderConfig() openai.Config {
	return openai.Config{
		APIKey:     os.Getenv(c.APIKeyEnv),
		Model:      c.Model,
		BaseURL:    c.BaseURL,
		BatchSize:  c.BatchSize,
		Dimensions: c.Dimensions,
		MaxRetries: c.MaxRetries,
		Timeout:    time.Duration(c.TimeoutSecs) * time.Second,
	}
}

// CacheConfig configures the SQLite cache. An empty Path disables caching.
type CacheConfig struct {
	Path *string `yaml:"path"`
}

// DBPath returns the cache database path, or "" when caching is disabled.
func (c CacheConfig) DBPath() string {
	if c.Path == nil {
		return ""
	}
	return *c.Path
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// DefaultPath returns ~/.pdfoutline/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pdfoutline", "config.yaml"), nil
}

// Load reads a config from path. If the file does not exist, it returns
// defaults. Returns EINVALID if the file cannot be decoded or names an
// unknown embedder.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, pdfoutline.Errorf(pdfoutline.EINVALID, "decode %s: %s", filepath.Base(path), err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	switch c.Embedder.Type {
	case EmbedderTFIDF, EmbedderGemini, EmbedderOpenAI:
	default:
		return pdfoutline.Errorf(pdfoutline.EINVALID, "unknown embedder %q", c.Embedder.Type)
	}
	if c.Rank.Limit < 0 {
		return pdfoutline.Errorf(pdfoutline.EINVALID, "rank limit must not be negative")
	}
	return nil
}

// defaultDBPath returns $PDFOUTLINE_DB if set, else ~/.pdfoutline/cache.db.
func defaultDBPath() string {
	if p, ok := os.LookupEnv(DBEnv); ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pdfoutline", "cache.db")
}

func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = DefaultInputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.ReportName == "" {
		cfg.ReportName = DefaultReportName
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	opts := outline.DefaultOptions()
	if cfg.Outline.CommonStyles <= 0 {
		cfg.Outline.CommonStyles = opts.CommonStyles
	}
	if cfg.Outline.MaxHeadingLength <= 0 {
		cfg.Outline.MaxHeadingLength = opts.MaxHeadingLength
	}
	if cfg.Outline.TitleBand <= 0 {
		cfg.Outline.TitleBand = opts.TitleBand
	}

	if cfg.Rank.Limit == 0 {
		cfg.Rank.Limit = pdfoutline.DefaultRankLimit
	}

	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = EmbedderTFIDF
	}
	if cfg.Embedder.Gemini.APIKeyEnv == "" {
		cfg.Embedder.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Embedder.Gemini.Model == "" {
		cfg.Embedder.Gemini.Model = gemini.DefaultModel
	}
	if cfg.Embedder.OpenAI.APIKeyEnv == "" {
		cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedder.OpenAI.Model == "" {
		cfg.Embedder.OpenAI.Model = openai.DefaultModel
	}
	if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
		cfg.Embedder.OpenAI.TimeoutSecs = 30
	}

	if cfg.Cache.Path == nil {
		p := defaultDBPath()
		cfg.Cache.Path = &p
	}
}
