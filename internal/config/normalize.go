package config

import (
	"fmt"
	"os"
	"strings"
)

var providerKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

func (c *Config) normalize() error {
	if c.Convert.Sentinel == "" {
		c.Convert.Sentinel = defaultSentinel
	}
	c.normalizeTranslate()
	if err := c.normalizeMedia(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTranslate() {
	t := &c.Translate
	t.Provider = strings.ToLower(strings.TrimSpace(t.Provider))
	if t.Provider == "" {
		t.Provider = defaultProvider
	}
	t.Model = strings.TrimSpace(t.Model)
	t.TargetLanguage = strings.TrimSpace(t.TargetLanguage)
	t.InputLanguage = strings.TrimSpace(t.InputLanguage)
	t.APIKey = strings.TrimSpace(t.APIKey)
	if t.APIKey == "" {
		t.APIKey = APIKeyFromEnv(t.Provider)
	}
	if t.BatchSize == 0 {
		t.BatchSize = defaultBatchSize
	}
	if t.Concurrency == 0 {
		t.Concurrency = defaultConcurrency
	}
}

func (c *Config) normalizeMedia() error {
	var err error
	if c.Media.FFmpegPath, err = expandPath(strings.TrimSpace(c.Media.FFmpegPath)); err != nil {
		return fmt.Errorf("media.ffmpeg_path: %w", err)
	}
	if c.Media.FFprobePath, err = expandPath(strings.TrimSpace(c.Media.FFprobePath)); err != nil {
		return fmt.Errorf("media.ffprobe_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// APIKeyFromEnv returns the conventional environment API key for provider.
func APIKeyFromEnv(provider string) string {
	key, ok := providerKeyEnv[provider]
	if !ok {
		return ""
	}
	return strings.TrimSpace(os.Getenv(key))
}
