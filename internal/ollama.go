package internal

import "strings"

// newOllamaProvider builds a Provider for a local Ollama instance. Ollama
// exposes an OpenAI-compatible chat completions endpoint under /v1, so the
// variant reuses the OpenAI client with a rewritten base URL and no API key.
func newOllamaProvider(baseURL string) *openaiProvider {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL += "/v1"
	}
	return &openaiProvider{
		name:     ProviderOllama,
		apiKey:   "ollama", // the endpoint ignores it but the SDK requires one
		baseURL:  baseURL,
		needsKey: false,
	}
}
