package internal

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// GenerateRequest is the provider-independent shape of one text-generation
// call. Variants differ only in request encoding and auth, not in this
// contract.
type GenerateRequest struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Provider is a language-model backend offering a text-generation endpoint.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)
}

// NewProvider constructs the backend selected by the settings. Credentials
// are resolved lazily on first call, not here.
func NewProvider(settings *Settings) (Provider, error) {
	params := settings.Params()
	switch settings.Provider {
	case ProviderOpenAI:
		return newOpenAIProvider(settings.APIKey(ProviderOpenAI), ""), nil
	case ProviderAnthropic:
		return newAnthropicProvider(settings.APIKey(ProviderAnthropic)), nil
	case ProviderOllama:
		return newOllamaProvider(params.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrConfig, settings.Provider)
	}
}

// Summarizer turns cleaned transcripts into markdown summaries and short
// filename titles using the configured provider.
type Summarizer struct {
	provider Provider
	params   ProviderParams
	ui       *UI
}

// NewSummarizer creates a summarizer bound to a provider and its parameters.
func NewSummarizer(provider Provider, params ProviderParams, ui *UI) *Summarizer {
	return &Summarizer{provider: provider, params: params, ui: ui}
}

// Summarize generates a markdown summary for a cleaned transcript.
// Transcripts longer than the configured max_input_chars are truncated to
// the leading characters rather than rejected.
func (s *Summarizer) Summarize(ctx context.Context, transcript string, metadata *VideoMetadata) (string, error) {
	transcript = s.truncate(transcript)

	prompt, err := buildSummaryPrompt(transcript, metadata)
	if err != nil {
		return "", err
	}

	summary, err := s.provider.GenerateText(ctx, GenerateRequest{
		System:      summarySystem,
		Prompt:      prompt,
		Model:       s.params.Model,
		MaxTokens:   s.params.MaxTokens,
		Temperature: s.params.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("%w: %s returned an empty summary", ErrProvider, s.provider.Name())
	}
	return summary, nil
}

// SummarizeTimestamped generates a markdown summary whose prompt instructs
// the model to embed clickable [HH:MM:SS](watch?v=...&t=Ns) links, using
// sampled caption cues as format examples. Used on the assistant-tool path,
// where summaries are read inline rather than saved as plain documents.
func (s *Summarizer) SummarizeTimestamped(ctx context.Context, transcript string, segments []Segment, videoID string, metadata *VideoMetadata) (string, error) {
	transcript = s.truncate(transcript)

	prompt, err := buildTimestampedSummaryPrompt(transcript, videoID, segments, metadata)
	if err != nil {
		return "", err
	}

	summary, err := s.provider.GenerateText(ctx, GenerateRequest{
		System:      summarySystem,
		Prompt:      prompt,
		Model:       s.params.Model,
		MaxTokens:   s.params.MaxTokens,
		Temperature: s.params.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("%w: %s returned an empty summary", ErrProvider, s.provider.Name())
	}
	return summary, nil
}

// Title generates a short filename-safe title from a summary using a lower
// token budget and temperature.
func (s *Summarizer) Title(ctx context.Context, summary string) (string, error) {
	prompt, err := buildTitlePrompt(summary)
	if err != nil {
		return "", err
	}

	title, err := s.provider.GenerateText(ctx, GenerateRequest{
		System:      titleSystem,
		Prompt:      prompt,
		Model:       s.params.Model,
		MaxTokens:   s.params.TitleMaxTokens,
		Temperature: s.params.TitleTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generating title: %w", err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: %s returned an empty title", ErrProvider, s.provider.Name())
	}
	return title, nil
}

func (s *Summarizer) truncate(transcript string) string {
	limit := s.params.MaxInputChars
	if limit > 0 && len(transcript) > limit {
		s.ui.Verbosef("Transcript exceeds %d characters, truncating (%d total)\n", limit, len(transcript))
		return truncateUTF8(transcript, limit)
	}
	return transcript
}

// truncateUTF8 cuts s to at most limit bytes, backing up so a multi-byte
// rune is never split.
func truncateUTF8(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// toEnvName returns the environment-variable prefix for a provider name.
func toEnvName(provider string) string {
	return strings.ToUpper(provider)
}

// classifyProviderError maps backend failures onto the error taxonomy:
// credential problems are fatal for the batch, everything else skips the
// item. Matching on message text mirrors how the SDKs surface HTTP status.
func classifyProviderError(provider string, err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "api key") || strings.Contains(msg, "authentication"):
		return fmt.Errorf("%w: %s: %v", ErrAuth, provider, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrProvider, provider, err)
	}
}
