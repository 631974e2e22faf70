package translate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-5-mini"

// OpenAITranslator translates through OpenAI Chat Completions.
type OpenAITranslator struct {
	batcher
	client  openai.Client
	model   string
	options Options
}

func NewOpenAITranslator(
	_ context.Context,
	apiKey string,
	opts Options,
) (*OpenAITranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	t := &OpenAITranslator{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		options: opts,
	}
	t.batcher = newBatcher(opts, t.translateBatch)
	return t, nil
}

func (t *OpenAITranslator) translateBatch(ctx context.Context, items []Item) ([]Result, error) {
	completion, err := t.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(BuildPrompt(t.options, items)),
			},
			Model: t.model,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	return parseResults(ProviderOpenAI, completion.Choices[0].Message.Content, items)
}
