package internal

import (
	"context"
	"fmt"
	"sync"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// openaiProvider implements Provider against the OpenAI chat completions
// API. It also backs the Ollama variant, which speaks the same protocol on a
// local endpoint.
type openaiProvider struct {
	name       string
	apiKey     string
	baseURL    string
	needsKey   bool
	client     openai.Client
	clientOnce sync.Once
}

func newOpenAIProvider(apiKey, baseURL string) *openaiProvider {
	return &openaiProvider{
		name:     ProviderOpenAI,
		apiKey:   apiKey,
		baseURL:  baseURL,
		needsKey: true,
	}
}

func (p *openaiProvider) Name() string { return p.name }

// ensureClient initializes the SDK client on first use so missing
// credentials surface as an auth error at call time, not at startup.
func (p *openaiProvider) ensureClient() error {
	if p.needsKey && p.apiKey == "" {
		return fmt.Errorf("%w: set api_keys.%s in config.yaml or the %s_API_KEY environment variable",
			ErrAuth, p.name, toEnvName(p.name))
	}
	p.clientOnce.Do(func() {
		opts := []option.RequestOption{option.WithAPIKey(p.apiKey)}
		if p.baseURL != "" {
			opts = append(opts, option.WithBaseURL(p.baseURL))
		}
		p.client = openai.NewClient(opts...)
	})
	return nil
}

func (p *openaiProvider) GenerateText(ctx context.Context, req GenerateRequest) (string, error) {
	if err := p.ensureClient(); err != nil {
		return "", err
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return "", classifyProviderError(p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s returned no choices", ErrProvider, p.name)
	}
	return resp.Choices[0].Message.Content, nil
}
