// Package openai provides an intent.Classifier backed by the OpenAI Chat
// Completions API, mirroring the anthropic adapter.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/intent"
)

// Options configures the OpenAI classifier adapter.
type Options struct {
	Model               string
	MaxCompletionTokens int64
}

// Classifier wraps the OpenAI Chat Completions API behind the
// intent.Classifier interface.
type Classifier struct {
	client *openai.Client
	opts   Options
}

var _ intent.Classifier = (*Classifier)(nil)

// NewClassifier creates a classifier using the official client (API key from
// the environment).
func NewClassifier(optFns ...func(o *Options)) *Classifier {
	client := openai.NewClient()
	return NewClassifierFromClient(&client, optFns...)
}

// NewClassifierFromClient creates a classifier from an existing client.
func NewClassifierFromClient(client *openai.Client, optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		MaxCompletionTokens: 16,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classifier{client: client, opts: opts}
}

// Classify sends the classification prompt and parses the single-word reply.
func (c *Classifier) Classify(ctx context.Context, text string) (core.Intent, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(intent.ClassificationPrompt),
			openai.UserMessage(text),
		},
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	})
	if err != nil {
		return core.Intent{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.Intent{}, fmt.Errorf("no choices returned")
	}

	category := intent.ParseCategory(resp.Choices[0].Message.Content)
	confidence := 0.9
	if category == core.IntentUnknown {
		confidence = 0.3
	}
	return core.NewIntent(text, category, confidence), nil
}
