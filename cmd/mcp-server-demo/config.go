package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// config is the optional YAML file accepted via --config. Every field has a
// working zero value so the flag is genuinely optional.
type config struct {
	Instructions string `yaml:"instructions"`
	MathMaxLen   int    `yaml:"mathMaxExpressionLength"`
}

func defaultConfig() config {
	return config{
		Instructions: "Demo MCP engine server: math, json.query, diff, gitignore.check, config.convert.",
		MathMaxLen:   256,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
