// Package anthropic provides an intent.Classifier backed by the Anthropic
// Claude API. It sends a single-word classification prompt and maps the
// completion onto the core intent categories.
package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/intent"
)

// Options configures the Anthropic classifier adapter.
type Options struct {
	Model     anthropic.Model
	MaxTokens int64
	APIKey    string
}

// Classifier wraps the Anthropic Messages API behind the intent.Classifier
// interface.
type Classifier struct {
	client *anthropic.Client
	opts   Options
}

var _ intent.Classifier = (*Classifier)(nil)

// NewClassifier creates a classifier using the official client.
func NewClassifier(optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 16,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Classifier{client: &client, opts: opts}
}

// NewClassifierFromClient creates a classifier from an existing client.
func NewClassifierFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 16,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classifier{client: client, opts: opts}
}

// Classify sends the classification prompt and parses the single-word reply.
// API failures surface as errors so the orchestrator can fall back to the
// keyword classifier.
func (c *Classifier) Classify(ctx context.Context, text string) (core.Intent, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.opts.Model,
		MaxTokens: c.opts.MaxTokens,
		System:    []anthropic.TextBlockParam{{Text: intent.ClassificationPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return core.Intent{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var label string
	for _, block := range resp.Content {
		if block.Type == "text" {
			label = block.AsText().Text
			break
		}
	}
	category := intent.ParseCategory(label)
	confidence := 0.9
	if category == core.IntentUnknown {
		confidence = 0.3
	}
	return core.NewIntent(text, category, confidence), nil
}
