package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConvert(); err != nil {
		return err
	}
	if c.Limits.MaxInputBytes < 0 {
		return errors.New("limits.max_input_bytes must be zero or positive")
	}
	if err := c.validateTranslate(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateConvert() error {
	if strings.ContainsAny(c.Convert.Sentinel, "\r\n") {
		return errors.New("convert.sentinel must not contain line breaks")
	}
	return nil
}

func (c *Config) validateTranslate() error {
	if _, ok := providerKeyEnv[c.Translate.Provider]; !ok {
		return fmt.Errorf("translate.provider %q is not supported (gemini, openai, anthropic)", c.Translate.Provider)
	}
	if c.Translate.BatchSize < 1 {
		return errors.New("translate.batch_size must be positive")
	}
	if c.Translate.Concurrency < 1 {
		return errors.New("translate.concurrency must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
