package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSettingsWritesDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	configDir := t.TempDir()

	settings, err := loadSettings("", configDir)
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}

	if settings.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q, want %q", settings.Provider, ProviderOpenAI)
	}
	if !settings.SkipExisting {
		t.Error("SkipExisting = false, want default true")
	}
	if settings.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", settings.OutputDir, ".")
	}
	if !FileExists(filepath.Join(configDir, "config.yaml")) {
		t.Error("default config.yaml was not written to the config directory")
	}
}

func TestLoadSettingsSearchOrder(t *testing.T) {
	// A config.yaml in the working directory wins over the config-dir one.
	cwd := t.TempDir()
	t.Chdir(cwd)
	configDir := t.TempDir()

	writeConfig(t, cwd, "provider: ollama\n")
	writeConfig(t, configDir, "provider: anthropic\n")

	settings, err := loadSettings("", configDir)
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if settings.Provider != ProviderOllama {
		t.Errorf("Provider = %q, want %q from working directory", settings.Provider, ProviderOllama)
	}
}

func TestLoadSettingsExplicitPath(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	path := writeConfig(t, dir, "provider: anthropic\napp:\n  skip_existing: false\n")

	settings, err := loadSettings(path, t.TempDir())
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if settings.Provider != ProviderAnthropic {
		t.Errorf("Provider = %q, want %q", settings.Provider, ProviderAnthropic)
	}
	if settings.SkipExisting {
		t.Error("SkipExisting = true, want false from config file")
	}
	// Sparse config still gets built-in provider defaults.
	if got := settings.Params().MaxTokens; got != 1500 {
		t.Errorf("Params().MaxTokens = %d, want default 1500", got)
	}
}

func TestLoadSettingsExplicitPathMissing(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	if !errors.Is(err, ErrConfig) {
		t.Errorf("loadSettings() error = %v, want ErrConfig", err)
	}
}

func TestLoadSettingsMalformed(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	path := writeConfig(t, cwd, "provider: [unclosed\n")

	_, err := loadSettings("", t.TempDir())
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("loadSettings() error = %v, want ErrConfig", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the offending file %s", err, path)
	}
}

func TestLoadSettingsInvalidValues(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	writeConfig(t, cwd, `
provider: nonesuch
providers:
  openai:
    max_tokens: -5
`)

	_, err := loadSettings("", t.TempDir())
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("loadSettings() error = %v, want ErrConfig", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("loadSettings() error = %T, want *ValidationError", err)
	}
	// All invalid fields are reported at once.
	msg := verr.Error()
	for _, want := range []string{"provider:", "providers.openai.max_tokens"} {
		if !strings.Contains(msg, want) {
			t.Errorf("ValidationError %q missing %q", msg, want)
		}
	}
}

func TestSettingsAPIKey(t *testing.T) {
	settings := &Settings{APIKeys: map[string]string{ProviderOpenAI: "sk-from-config"}}

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	if got := settings.APIKey(ProviderOpenAI); got != "sk-from-config" {
		t.Errorf("APIKey() = %q, want config value to win", got)
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")
	if got := settings.APIKey(ProviderAnthropic); got != "sk-ant-env" {
		t.Errorf("APIKey() = %q, want env fallback", got)
	}

	t.Setenv("GROQ_API_KEY", "")
	if got := settings.APIKey("groq"); got != "" {
		t.Errorf("APIKey() = %q, want empty for unknown provider", got)
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
