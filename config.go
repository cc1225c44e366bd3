package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/marcosfelt/thermo/eos"
)

// Config holds the thermo command configuration.
type Config struct {
	InputPath string
	OutputDir string
	Workers   int
	Numerics  eos.Numerics
}

type envConfig struct {
	InputPath string `env:"THERMO_INPUT"`
	OutputDir string `env:"THERMO_OUTPUT_DIR" envDefault:"."`
	Workers   int    `env:"THERMO_WORKERS" envDefault:"4"`
	Numerics  string `env:"THERMO_NUMERICS" envDefault:"quick"`
}

// ParseConfig parses flags into a Config. Environment variables supply the
// flag defaults.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	var cfg Config
	var numerics string
	fs.StringVar(&cfg.InputPath, "input", envCfg.InputPath, "計算ケースのCSVファイル (default: THERMO_INPUT)")
	fs.StringVar(&cfg.OutputDir, "o", envCfg.OutputDir, "出力フォルダ (default: THERMO_OUTPUT_DIR or .)")
	fs.IntVar(&cfg.Workers, "workers", envCfg.Workers, "同時に解くケースの数 (default: THERMO_WORKERS or 4)")
	fs.StringVar(&numerics, "numerics", envCfg.Numerics, "quick|reference (default: THERMO_NUMERICS or quick)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.InputPath == "" {
		return Config{}, errors.New("-input is required")
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("-workers must be > 0, got %d", cfg.Workers)
	}
	n, err := eos.NumericsByName(numerics)
	if err != nil {
		return Config{}, err
	}
	cfg.Numerics = n
	return cfg, nil
}
