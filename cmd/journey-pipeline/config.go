package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	BaseDir string

	ChunkSize int
	MaxChunks int

	Model        string
	JourneyModel string
	APIKey       string

	Pretty   bool
	LogLevel string
}

func (c Config) Validate() error {
	if c.BaseDir == "" {
		return errors.New("missing -base-dir")
	}
	if c.ChunkSize <= 0 {
		return errors.New("chunk-size must be > 0")
	}
	if c.MaxChunks <= 0 {
		return errors.New("max-chunks must be > 0")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.JourneyModel == "" {
		return errors.New("missing -journey-model")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		BaseDir:   ".",
		ChunkSize: 10,
		MaxChunks: 9,
		Model:     "gpt-4o-mini",
		LogLevel:  "info",
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.BaseDir, "base-dir", cfg.BaseDir, "Base directory holding the raw-reviews input dir and all artifact dirs")
	fs.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "Reviews per chunk")
	fs.IntVar(&cfg.MaxChunks, "max-chunks", cfg.MaxChunks, "Maximum chunks per run; later input records are excluded from the run")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model for per-chunk sentiment summaries")
	fs.StringVar(&cfg.JourneyModel, "journey-model", "", "OpenAI model for taxonomy generation and review mapping (default: gpt-4)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.BoolVar(&cfg.Pretty, "pretty", true, "Pretty-print JSON artifacts")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.JourneyModel == "" {
		cfg.JourneyModel = "gpt-4"
	}
	cfg.BaseDir = filepath.Clean(cfg.BaseDir)
	return cfg, nil
}
