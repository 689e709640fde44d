// Package provider adapts the Anthropic Messages API to the assistant's
// collaborator contract: full transcript plus the newest human turn in,
// one text reply out.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jmadden/officepal/internal/history"
)

// DefaultModel is used when no model is configured.
const DefaultModel = string(anthropic.ModelClaude3_7SonnetLatest)

// Client sends one chat turn at a time. The SDK reads ANTHROPIC_API_KEY
// from the environment; a missing key surfaces on the first call, not
// at construction.
type Client struct {
	api         *anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature float64
}

// New returns a client for the given model. Extra request options are
// passed through to the SDK (tests inject an HTTP transport this way).
func New(model string, maxTokens int64, temperature float64, opts ...option.RequestOption) *Client {
	c := anthropic.NewClient(opts...)
	return &Client{
		api:         &c,
		model:       anthropic.Model(model),
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Reply sends the persisted transcript plus the newest human turn and
// returns the assistant's text reply. Errors propagate unwrapped in
// meaning: the turn fails, the process does not.
func (c *Client) Reply(ctx context.Context, transcript []history.Message, input string) (string, error) {
	conv := make([]anthropic.MessageParam, 0, len(transcript)+1)
	for _, m := range transcript {
		if m.Type == history.RoleHuman {
			conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			conv = append(conv, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(input)))

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages:    conv,
	})
	if err != nil {
		return "", fmt.Errorf("provider: messages call: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}
