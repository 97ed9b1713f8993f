package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediastack/internal/config"
	"mediastack/internal/services"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantIndex := filepath.Join(tempHome, ".local", "share", "mediastack")
	if cfg.Paths.IndexDir != wantIndex {
		t.Fatalf("unexpected index dir: got %q want %q", cfg.Paths.IndexDir, wantIndex)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if len(cfg.Naming.VideoFileStackingExpressions) != 3 {
		t.Fatalf("expected 3 default stacking expressions, got %d", len(cfg.Naming.VideoFileStackingExpressions))
	}
	if cfg.Naming.FolderPlaceholderExtension != ".mkv" {
		t.Fatalf("unexpected placeholder extension: %q", cfg.Naming.FolderPlaceholderExtension)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.IndexDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mediastack.toml")

	type payload struct {
		Naming struct {
			VideoFileExtensions          []string `toml:"video_file_extensions"`
			VideoFileStackingExpressions []string `toml:"video_file_stacking_expressions"`
			FolderPlaceholderExtension   string   `toml:"folder_placeholder_extension"`
		} `toml:"naming"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Naming.VideoFileExtensions = []string{"MKV", ".mp4", "mkv", " "}
	custom.Naming.VideoFileStackingExpressions = []string{`(.*?)(\d+)(.*?)(\.[^.]+)$`, "  "}
	custom.Naming.FolderPlaceholderExtension = "avi"
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if got := strings.Join(cfg.Naming.VideoFileExtensions, ","); got != ".mkv,.mp4" {
		t.Fatalf("unexpected video extensions: %q", got)
	}
	if len(cfg.Naming.VideoFileStackingExpressions) != 1 {
		t.Fatalf("expected blank expression to be dropped, got %v", cfg.Naming.VideoFileStackingExpressions)
	}
	if cfg.Naming.FolderPlaceholderExtension != ".avi" {
		t.Fatalf("unexpected placeholder extension: %q", cfg.Naming.FolderPlaceholderExtension)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
	if len(cfg.Naming.StubFileExtensions) != 1 || cfg.Naming.StubFileExtensions[0] != ".disc" {
		t.Fatalf("expected stub defaults to survive partial config, got %v", cfg.Naming.StubFileExtensions)
	}
}

func TestEnvOverrides(t *testing.T) {
	indexDir := t.TempDir()
	t.Setenv("MEDIASTACK_INDEX_DIR", indexDir)
	t.Setenv("MEDIASTACK_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.IndexDir != indexDir {
		t.Fatalf("expected index dir from env, got %q", cfg.Paths.IndexDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level from env, got %q", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"no expressions", func(c *config.Config) { c.Naming.VideoFileStackingExpressions = nil }, "at least one expression"},
		{"bad expression", func(c *config.Config) { c.Naming.VideoFileStackingExpressions = []string{`(unclosed`} }, "video_file_stacking_expressions[0]"},
		{"too few groups", func(c *config.Config) { c.Naming.VideoFileStackingExpressions = []string{`(.*)(\d)`} }, "expected 4 capture groups"},
		{"bad audiobook expression", func(c *config.Config) { c.Naming.AudioBookPartsExpressions = []string{`[`} }, "audiobook_parts_expressions[0]"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadInvalidFileIsConfigurationError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mediastack.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if len(cfg.Naming.AudioBookPartsExpressions) != 6 {
		t.Fatalf("expected 6 audiobook expressions from sample, got %d", len(cfg.Naming.AudioBookPartsExpressions))
	}
}
