// Package config loads the cardshoe HCL configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the configuration file read when no path is given.
const DefaultFile = "cardshoe.hcl"

// Config is the resolved configuration with defaults applied.
type Config struct {
	Store      StoreSettings
	Logging    LoggingSettings
	Dealing    DealingSettings
	Shuffle    ShuffleSettings
	Simulation SimulationSettings
}

// StoreSettings controls where state is persisted between commands
type StoreSettings struct {
	Path string `hcl:"path,optional"`
}

// LoggingSettings controls the logger
type LoggingSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"` // text, json or logfmt
}

// DealingSettings controls request-level validation of deals
type DealingSettings struct {
	// MaxCount bounds how many cards one deal request may ask for.
	MaxCount int `hcl:"max_count,optional"`
	// StrictCapacity rejects deals asking for more cards than remain
	// undealt instead of short-dealing.
	StrictCapacity bool `hcl:"strict_capacity,optional"`
}

// ShuffleSettings controls the shuffle random source
type ShuffleSettings struct {
	// Seed makes every shuffle reproducible when set.
	Seed *int64 `hcl:"seed,optional"`
}

// SimulationSettings holds defaults for the simulate command
type SimulationSettings struct {
	Games        int `hcl:"games,optional"`
	Decks        int `hcl:"decks,optional"`
	Players      int `hcl:"players,optional"`
	CardsPerDeal int `hcl:"cards_per_deal,optional"`
	Workers      int `hcl:"workers,optional"`
}

// fileConfig mirrors the file layout; every block is optional.
type fileConfig struct {
	Store      *StoreSettings      `hcl:"store,block"`
	Logging    *LoggingSettings    `hcl:"logging,block"`
	Dealing    *DealingSettings    `hcl:"dealing,block"`
	Shuffle    *ShuffleSettings    `hcl:"shuffle,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Store: StoreSettings{
			Path: "cardshoe.json",
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
		},
		Dealing: DealingSettings{
			MaxCount:       52,
			StrictCapacity: false,
		},
		Simulation: SimulationSettings{
			Games:        100,
			Decks:        1,
			Players:      4,
			CardsPerDeal: 5,
			Workers:      4,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; values missing from the file keep their defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.merge(&fc)
	return cfg, nil
}

func (c *Config) merge(fc *fileConfig) {
	if s := fc.Store; s != nil && s.Path != "" {
		c.Store.Path = s.Path
	}
	if l := fc.Logging; l != nil {
		if l.Level != "" {
			c.Logging.Level = l.Level
		}
		if l.Format != "" {
			c.Logging.Format = l.Format
		}
	}
	if d := fc.Dealing; d != nil {
		if d.MaxCount != 0 {
			c.Dealing.MaxCount = d.MaxCount
		}
		c.Dealing.StrictCapacity = d.StrictCapacity
	}
	if s := fc.Shuffle; s != nil {
		c.Shuffle.Seed = s.Seed
	}
	if s := fc.Simulation; s != nil {
		setIfPositive(&c.Simulation.Games, s.Games)
		setIfPositive(&c.Simulation.Decks, s.Decks)
		setIfPositive(&c.Simulation.Players, s.Players)
		setIfPositive(&c.Simulation.CardsPerDeal, s.CardsPerDeal)
		setIfPositive(&c.Simulation.Workers, s.Workers)
	}
}

func setIfPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store path must not be empty")
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q: must be text, json or logfmt", c.Logging.Format)
	}
	if c.Dealing.MaxCount < 1 {
		return fmt.Errorf("dealing max_count must be positive, got %d", c.Dealing.MaxCount)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation workers must be positive, got %d", c.Simulation.Workers)
	}
	return nil
}

// NewLogger builds a logger writing to stderr at the configured level and
// format.
func (c *Config) NewLogger() *log.Logger {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		level = log.InfoLevel
	}
	formatter := log.TextFormatter
	switch c.Logging.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
	})
}
