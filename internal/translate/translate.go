// Package translate fills catalog message strings by machine translation
// through hosted language models.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Item is one source text sent to a model. Index is the caller's key and
// comes back unchanged on the matching Result.
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Translator translates items, batching them as configured.
type Translator interface {
	Translate(ctx context.Context, items []Item) ([]Result, error)
}

// ConcurrentTranslator runs several batches at once.
type ConcurrentTranslator interface {
	Translator
	TranslateWithConcurrency(
		ctx context.Context,
		items []Item,
		concurrency int,
	) ([]Result, error)
}

type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Providers lists the supported providers.
func Providers() []Provider {
	return []Provider{ProviderGemini, ProviderOpenAI, ProviderAnthropic}
}

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	Prompt         string
	BatchSize      int // items per request, DefaultBatchSize when zero

	// Progress, when set, is called after every finished batch.
	Progress func(done, total int)
}

const (
	DefaultBatchSize   = 50
	DefaultConcurrency = 3
)

// Factory builds the Translator for provider.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// BuildPrompt renders the request for one batch of catalog messages.
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	if opts.InputLanguage != "" {
		fmt.Fprintf(&sb,
			"Translate the following %s subtitle lines to %s.\n\n",
			opts.InputLanguage,
			opts.TargetLanguage,
		)
	} else {
		fmt.Fprintf(&sb,
			"Translate the following subtitle lines to %s.\n\n",
			opts.TargetLanguage,
		)
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Translate ONLY the text, preserving the meaning.\n")
	sb.WriteString("2. Keep markup such as <i>, <b> and <font> tags unchanged.\n")
	sb.WriteString("3. Each text is one on-screen cue. Keep its line breaks (\\n) and do not merge cues.\n")
	sb.WriteString("4. Return ONLY a JSON array of objects with 'index' and 'text' fields.\n")
	sb.WriteString("5. The 'index' values must match the input indices exactly.\n")
	sb.WriteString("6. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		fmt.Fprintf(&sb, "Additional instructions: %s\n\n", opts.Prompt)
	}

	sb.WriteString("Input JSON:\n")
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(items)
	sb.WriteString("\nOutput the translated JSON array only:")

	return sb.String()
}
