package config

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateNaming() error {
	if len(c.Naming.VideoFileStackingExpressions) == 0 {
		return errors.New("naming.video_file_stacking_expressions must contain at least one expression")
	}
	if len(c.Naming.VideoFileExtensions) == 0 {
		return errors.New("naming.video_file_extensions must not be empty")
	}
	for i, expr := range c.Naming.VideoFileStackingExpressions {
		re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
		if err != nil {
			return fmt.Errorf("naming.video_file_stacking_expressions[%d]: %w", i, err)
		}
		// Four captures are required: title, volume, ignore, extension.
		if groups := len(re.GetGroupNumbers()) - 1; groups < 4 {
			return fmt.Errorf("naming.video_file_stacking_expressions[%d]: expected 4 capture groups, found %d", i, groups)
		}
	}
	for i, expr := range c.Naming.AudioBookPartsExpressions {
		if _, err := regexp2.Compile(expr, regexp2.IgnoreCase); err != nil {
			return fmt.Errorf("naming.audiobook_parts_expressions[%d]: %w", i, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
