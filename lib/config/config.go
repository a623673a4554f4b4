// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/zcl/lib/prefetch"
)

// EnvVar names the environment variable read by Load.
const EnvVar = "ZCL_CONFIG"

// Config is the configuration for zcl commands.
type Config struct {
	// Shards lists shard files in global index order.
	Shards []string `yaml:"shards"`

	// ShardDir, when set, contributes every *.shard file in the
	// directory, sorted by name, after the explicit Shards entries.
	ShardDir string `yaml:"shard_dir"`

	// Prefetch configures shard warming.
	Prefetch PrefetchConfig `yaml:"prefetch"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// PrefetchConfig configures the loader's prefetcher.
type PrefetchConfig struct {
	// Mode is one of auto, none, readahead.
	// Default: auto
	Mode string `yaml:"mode"`

	// QueueDepth bounds concurrent prefetch I/O.
	// Default: 32
	QueueDepth int `yaml:"queue_depth"`

	// Ahead is how many shards to keep submitted ahead of the shard
	// being read.
	// Default: 2
	Ahead int `yaml:"ahead"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is one of auto, json, text. Auto picks text when stderr
	// is a terminal and JSON otherwise.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns a Config with every field set. File values are
// merged over it.
func Default() *Config {
	return &Config{
		Prefetch: PrefetchConfig{
			Mode:       string(prefetch.ModeAuto),
			QueueDepth: prefetch.DefaultQueueDepth,
			Ahead:      2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the file named by ZCL_CONFIG. It fails
// if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your zcl.yaml config file, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.ShardDir = expandVars(c.ShardDir, vars)
	vars["ZCL_SHARD_DIR"] = c.ShardDir

	for i, shard := range c.Shards {
		c.Shards[i] = expandVars(shard, vars)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, consulting
// vars before the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := prefetch.ParseMode(c.Prefetch.Mode); err != nil {
		errs = append(errs, fmt.Errorf("prefetch.mode: %w", err))
	}
	if c.Prefetch.QueueDepth <= 0 {
		errs = append(errs, fmt.Errorf("prefetch.queue_depth must be positive, got %d", c.Prefetch.QueueDepth))
	}
	if c.Prefetch.Ahead < 0 {
		errs = append(errs, fmt.Errorf("prefetch.ahead must not be negative, got %d", c.Prefetch.Ahead))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"auto", "json", "text"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	for i, shard := range c.Shards {
		if shard == "" {
			errs = append(errs, fmt.Errorf("shards[%d] is empty", i))
		}
	}

	return errors.Join(errs...)
}

// ShardPaths returns Shards followed by the sorted *.shard files in
// ShardDir.
func (c *Config) ShardPaths() ([]string, error) {
	paths := slices.Clone(c.Shards)
	if c.ShardDir == "" {
		return paths, nil
	}
	matches, err := filepath.Glob(filepath.Join(c.ShardDir, "*.shard"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.ShardDir, err)
	}
	slices.Sort(matches)
	return append(paths, matches...), nil
}
