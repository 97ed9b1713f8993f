package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNaming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("MEDIASTACK_INDEX_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.IndexDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.IndexDir) == "" {
		c.Paths.IndexDir = defaultIndexDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.IndexDir, err = expandPath(c.Paths.IndexDir); err != nil {
		return fmt.Errorf("paths.index_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeNaming() {
	c.Naming.VideoFileExtensions = normalizeExtensions(c.Naming.VideoFileExtensions)
	c.Naming.StubFileExtensions = normalizeExtensions(c.Naming.StubFileExtensions)
	c.Naming.AudioFileExtensions = normalizeExtensions(c.Naming.AudioFileExtensions)
	c.Naming.VideoFileStackingExpressions = dropBlank(c.Naming.VideoFileStackingExpressions)
	c.Naming.AudioBookPartsExpressions = dropBlank(c.Naming.AudioBookPartsExpressions)

	ext := normalizeExtension(c.Naming.FolderPlaceholderExtension)
	if ext == "" {
		ext = defaultFolderPlaceholderExtension
	}
	c.Naming.FolderPlaceholderExtension = ext
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("MEDIASTACK_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeExtensions lowercases, dot-prefixes, and de-duplicates extensions
// while keeping their configured order.
func normalizeExtensions(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		ext := normalizeExtension(value)
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

func normalizeExtension(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "." {
		return ""
	}
	if !strings.HasPrefix(value, ".") {
		value = "." + value
	}
	return value
}

// Expressions are kept verbatim; whitespace can be significant in a pattern.
func dropBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}
