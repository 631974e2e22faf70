package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mgpai22/subpo/internal/translate"
)

var knownModels = map[translate.Provider][]string{
	translate.ProviderGemini: {
		"gemini-3-pro-preview",
		"gemini-3-flash-preview",
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
	},
	translate.ProviderOpenAI: {
		"o1", "o3-mini", "o1-pro", "o3",
		"gpt-5", "gpt-5-nano", "gpt-5-mini", "gpt-5-pro",
		"gpt-5.1", "gpt-5.2", "gpt-5.2-pro",
	},
	translate.ProviderAnthropic: {
		"claude-haiku-4-5",
		"claude-sonnet-4-5",
		"claude-opus-4-1",
	},
}

// checkModel rejects models the provider is not known to serve. An empty
// model selects the provider default.
func checkModel(provider translate.Provider, model string) error {
	if model == "" {
		return nil
	}
	models, ok := knownModels[provider]
	if !ok {
		return fmt.Errorf("unsupported translation provider: %s", provider)
	}
	if slices.Contains(models, model) {
		return nil
	}
	return fmt.Errorf(
		"unsupported %s model %q: valid models are %s (use --model-override to bypass)",
		provider,
		model,
		strings.Join(models, ", "),
	)
}
