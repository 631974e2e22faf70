package config

const (
	defaultSentinel    = "<nl>"
	defaultProvider    = "gemini"
	defaultBatchSize   = 50
	defaultConcurrency = 3
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Convert: Convert{
			Sentinel: defaultSentinel,
		},
		Translate: Translate{
			Provider:    defaultProvider,
			BatchSize:   defaultBatchSize,
			Concurrency: defaultConcurrency,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
