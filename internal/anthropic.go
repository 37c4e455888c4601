package internal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicProvider implements Provider against the Anthropic messages API.
type anthropicProvider struct {
	apiKey     string
	client     anthropic.Client
	clientOnce sync.Once
}

func newAnthropicProvider(apiKey string) *anthropicProvider {
	return &anthropicProvider{apiKey: apiKey}
}

func (p *anthropicProvider) Name() string { return ProviderAnthropic }

func (p *anthropicProvider) ensureClient() error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: set api_keys.anthropic in config.yaml or the ANTHROPIC_API_KEY environment variable", ErrAuth)
	}
	p.clientOnce.Do(func() {
		p.client = anthropic.NewClient(option.WithAPIKey(p.apiKey))
	})
	return nil
}

func (p *anthropicProvider) GenerateText(ctx context.Context, req GenerateRequest) (string, error) {
	if err := p.ensureClient(); err != nil {
		return "", err
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", classifyProviderError(ProviderAnthropic, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: anthropic returned no text content", ErrProvider)
	}
	return sb.String(), nil
}
