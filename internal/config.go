package internal

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Provider names accepted by the "provider" setting.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

var knownProviders = []string{ProviderOpenAI, ProviderAnthropic, ProviderOllama}

//go:embed config.yaml
var defaultFS embed.FS

// ProviderParams holds per-provider generation parameters.
type ProviderParams struct {
	Model            string
	MaxTokens        int
	Temperature      float64
	TitleMaxTokens   int
	TitleTemperature float64
	BaseURL          string
	MaxInputChars    int
}

// Settings is the immutable application configuration, built once per
// process from the config file merged over built-in defaults.
type Settings struct {
	Provider  string
	APIKeys   map[string]string
	Providers map[string]ProviderParams

	OutputDir    string
	SkipExisting bool
	MCPLog       bool

	Verbose bool
	Quiet   bool

	ConfigDir  string
	ConfigFile string
}

// Params returns the generation parameters for the selected provider.
func (s *Settings) Params() ProviderParams {
	return s.Providers[s.Provider]
}

// APIKey resolves the credential for a provider: explicit config value
// first, then the <PROVIDER>_API_KEY environment variable. An empty result
// is not an error here; it is checked lazily at first provider use.
func (s *Settings) APIKey(provider string) string {
	if key := s.APIKeys[provider]; key != "" {
		return key
	}
	return os.Getenv(strings.ToUpper(provider) + "_API_KEY")
}

// Validate checks the settings shape and returns a ValidationError listing
// every invalid field. Missing credentials are deliberately not checked.
func (s *Settings) Validate() error {
	var fields []string

	if !slices.Contains(knownProviders, s.Provider) {
		fields = append(fields, fmt.Sprintf("provider: %q is not one of %s", s.Provider, strings.Join(knownProviders, ", ")))
	}
	for _, name := range knownProviders {
		p, ok := s.Providers[name]
		if !ok {
			fields = append(fields, fmt.Sprintf("providers.%s: missing", name))
			continue
		}
		if p.Model == "" {
			fields = append(fields, fmt.Sprintf("providers.%s.model: empty", name))
		}
		if p.MaxTokens <= 0 {
			fields = append(fields, fmt.Sprintf("providers.%s.max_tokens: must be positive", name))
		}
		if p.Temperature < 0 || p.Temperature > 2 {
			fields = append(fields, fmt.Sprintf("providers.%s.temperature: must be within [0, 2]", name))
		}
		if p.TitleMaxTokens <= 0 {
			fields = append(fields, fmt.Sprintf("providers.%s.title_max_tokens: must be positive", name))
		}
		if p.MaxInputChars <= 0 {
			fields = append(fields, fmt.Sprintf("providers.%s.max_input_chars: must be positive", name))
		}
		if name == ProviderOllama && p.BaseURL == "" {
			fields = append(fields, "providers.ollama.base_url: required for local backend")
		}
	}
	if s.OutputDir == "" {
		fields = append(fields, "app.default_output_dir: empty")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// LoadSettings locates, parses, and validates the configuration. With an
// explicit path only that file is considered; otherwise the search order is
// the current directory, then the XDG config directory. If no file exists
// anywhere, the embedded default is written to the XDG directory and used.
func LoadSettings(explicitPath string) (*Settings, error) {
	configDir := filepath.Join(xdg.ConfigHome, "ytsum")
	return loadSettings(explicitPath, configDir)
}

func loadSettings(explicitPath, configDir string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case explicitPath != "":
			return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, explicitPath, err)
		case errors.As(err, &notFound):
			// No config anywhere: persist the embedded default and retry.
			if err := writeDefaultConfig(configDir); err != nil {
				return nil, err
			}
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("%w: reading default config: %v", ErrConfig, err)
			}
		default:
			return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfig, v.ConfigFileUsed(), err)
		}
	}

	settings := &Settings{
		Provider:     v.GetString("provider"),
		APIKeys:      v.GetStringMapString("api_keys"),
		Providers:    readProviders(v),
		OutputDir:    v.GetString("app.default_output_dir"),
		SkipExisting: v.GetBool("app.skip_existing"),
		MCPLog:       v.GetBool("app.mcp_log"),
		ConfigDir:    configDir,
		ConfigFile:   v.ConfigFileUsed(),
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", settings.ConfigFile, err)
	}
	return settings, nil
}

// setDefaults registers built-in defaults so a sparse config file only
// overrides the fields it names.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("app.default_output_dir", ".")
	v.SetDefault("app.skip_existing", true)
	v.SetDefault("app.mcp_log", false)

	models := map[string]string{
		ProviderOpenAI:    "gpt-4o-mini",
		ProviderAnthropic: "claude-3-5-haiku-latest",
		ProviderOllama:    "llama3.2:3b",
	}
	for name, model := range models {
		v.SetDefault("providers."+name+".model", model)
		v.SetDefault("providers."+name+".max_tokens", 1500)
		v.SetDefault("providers."+name+".temperature", 0.7)
		v.SetDefault("providers."+name+".title_max_tokens", 50)
		v.SetDefault("providers."+name+".title_temperature", 0.3)
		v.SetDefault("providers."+name+".max_input_chars", 48000)
	}
	v.SetDefault("providers.ollama.base_url", "http://localhost:11434")
}

func readProviders(v *viper.Viper) map[string]ProviderParams {
	providers := make(map[string]ProviderParams, len(knownProviders))
	for _, name := range knownProviders {
		prefix := "providers." + name + "."
		providers[name] = ProviderParams{
			Model:            v.GetString(prefix + "model"),
			MaxTokens:        v.GetInt(prefix + "max_tokens"),
			Temperature:      v.GetFloat64(prefix + "temperature"),
			TitleMaxTokens:   v.GetInt(prefix + "title_max_tokens"),
			TitleTemperature: v.GetFloat64(prefix + "title_temperature"),
			BaseURL:          v.GetString(prefix + "base_url"),
			MaxInputChars:    v.GetInt(prefix + "max_input_chars"),
		}
	}
	return providers
}

// writeDefaultConfig persists the embedded default config.yaml so users have
// a commented file to edit.
func writeDefaultConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("%w: creating config directory: %v", ErrFilesystem, err)
	}
	content, err := defaultFS.ReadFile("config.yaml")
	if err != nil {
		return fmt.Errorf("reading embedded default config: %w", err)
	}
	path := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("%w: writing default config: %v", ErrFilesystem, err)
	}
	fmt.Fprintf(os.Stderr, "Created default configuration at %s\n", path)
	return nil
}
