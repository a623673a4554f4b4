// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "zcl.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Prefetch.Mode != "auto" {
		t.Errorf("expected prefetch.mode=auto, got %s", cfg.Prefetch.Mode)
	}
	if cfg.Prefetch.QueueDepth != 32 {
		t.Errorf("expected prefetch.queue_depth=32, got %d", cfg.Prefetch.QueueDepth)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "auto" {
		t.Errorf("expected log info/auto, got %s/%s", cfg.Log.Level, cfg.Log.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresZCLConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when ZCL_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "ZCL_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestLoad_WithZCLConfig(t *testing.T) {
	configPath := writeConfig(t, `
shards:
  - /data/a.shard
  - /data/b.shard
prefetch:
  mode: none
  ahead: 4
`)
	t.Setenv(EnvVar, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if want := []string{"/data/a.shard", "/data/b.shard"}; !slices.Equal(cfg.Shards, want) {
		t.Errorf("expected shards=%v, got %v", want, cfg.Shards)
	}
	if cfg.Prefetch.Mode != "none" {
		t.Errorf("expected prefetch.mode=none, got %s", cfg.Prefetch.Mode)
	}
	if cfg.Prefetch.Ahead != 4 {
		t.Errorf("expected prefetch.ahead=4, got %d", cfg.Prefetch.Ahead)
	}
	// Unset fields keep their defaults.
	if cfg.Prefetch.QueueDepth != 32 {
		t.Errorf("expected default queue_depth=32, got %d", cfg.Prefetch.QueueDepth)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log.level=info, got %s", cfg.Log.Level)
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFile(empty) failed: %v", err)
	}
	if cfg.Prefetch.Mode != "auto" {
		t.Errorf("expected defaults from empty file, got mode=%s", cfg.Prefetch.Mode)
	}
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "prefetch:\n  queue_dpeth: 4\n"))
	if err == nil {
		t.Fatal("expected error for misspelled key, got nil")
	}
	if !strings.Contains(err.Error(), "queue_dpeth") {
		t.Errorf("error does not name the bad key: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("ZCL_TEST_DATA", "/mnt/datasets")
	t.Setenv("HOME", "/home/trainer")

	cfg, err := LoadFile(writeConfig(t, `
shard_dir: ${HOME}/shards
shards:
  - ${ZCL_TEST_DATA}/first.shard
  - ${ZCL_SHARD_DIR}/pinned.shard
  - ${ZCL_TEST_UNSET:-/fallback}/x.shard
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.ShardDir != "/home/trainer/shards" {
		t.Errorf("expected shard_dir=/home/trainer/shards, got %s", cfg.ShardDir)
	}
	want := []string{
		"/mnt/datasets/first.shard",
		"/home/trainer/shards/pinned.shard",
		"/fallback/x.shard",
	}
	if !slices.Equal(cfg.Shards, want) {
		t.Errorf("expected shards=%v, got %v", want, cfg.Shards)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("ZCL_TEST_ENV", "from-env")
	vars := map[string]string{"LOCAL": "from-vars", "EMPTY": ""}

	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"${LOCAL}/x", "from-vars/x"},
		{"${ZCL_TEST_ENV}", "from-env"},
		{"${EMPTY:-fallback}", "fallback"},
		{"${ZCL_TEST_MISSING}", ""},
		{"${LOCAL}-${ZCL_TEST_ENV}", "from-vars-from-env"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr []string
	}{
		{"valid", func(*Config) {}, nil},
		{"bad mode", func(c *Config) { c.Prefetch.Mode = "io_uring" }, []string{"prefetch.mode"}},
		{"zero depth", func(c *Config) { c.Prefetch.QueueDepth = 0 }, []string{"prefetch.queue_depth"}},
		{"negative ahead", func(c *Config) { c.Prefetch.Ahead = -1 }, []string{"prefetch.ahead"}},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, []string{"log.level"}},
		{"empty shard", func(c *Config) { c.Shards = []string{"a", ""} }, []string{"shards[1]"}},
		{
			"all problems reported",
			func(c *Config) {
				c.Log.Format = "xml"
				c.Prefetch.QueueDepth = -3
			},
			[]string{"log.format", "prefetch.queue_depth"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if len(test.wantErr) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			for _, fragment := range test.wantErr {
				if !strings.Contains(err.Error(), fragment) {
					t.Errorf("error %q does not mention %q", err.Error(), fragment)
				}
			}
		})
	}
}

func TestShardPaths(t *testing.T) {
	directory := t.TempDir()
	for _, name := range []string{"b.shard", "a.shard", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(directory, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := Default()
	cfg.Shards = []string{"/explicit.shard"}
	cfg.ShardDir = directory

	got, err := cfg.ShardPaths()
	if err != nil {
		t.Fatalf("ShardPaths failed: %v", err)
	}
	want := []string{
		"/explicit.shard",
		filepath.Join(directory, "a.shard"),
		filepath.Join(directory, "b.shard"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("ShardPaths = %v, want %v", got, want)
	}
}
