package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OLLAMACHECK_OLLAMA_HOST",
		"OLLAMACHECK_MODEL",
		"OLLAMACHECK_PROMPT",
		"OLLAMACHECK_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.toml")
	t.Setenv("OLLAMACHECK_CONFIG", missing)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, FileExists(missing), "explicit path is never created")

	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL())
	assert.Equal(t, "llama2", cfg.Model)
	assert.Equal(t, "Hello, how are you?", cfg.Prompt)
	assert.False(t, cfg.HasOptions())
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := `
[ollama]
host = "http://gpu-box:11434"
model = "mistral"

[generate]
prompt = "ping"

[options]
temperature = 0.2
top_k = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("OLLAMACHECK_CONFIG", path)
	t.Setenv("OLLAMACHECK_MODEL", "llama3.1:latest")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://gpu-box:11434", cfg.OllamaHost, "file overrides default")
	assert.Equal(t, "llama3.1:latest", cfg.Model, "env overrides file")
	assert.Equal(t, "ping", cfg.Prompt)
	require.True(t, cfg.HasOptions())
	require.NotNil(t, cfg.Options.Temperature)
	assert.InDelta(t, 0.2, *cfg.Options.Temperature, 1e-9)
	require.NotNil(t, cfg.Options.TopK)
	assert.Equal(t, 10, *cfg.Options.TopK)
	assert.Nil(t, cfg.Options.TopP)
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ollama\nhost ="), 0600))
	t.Setenv("OLLAMACHECK_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestDefaultTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	require.NoError(t, CreateDefaultFileConfig(path))

	fileCfg, err := LoadFileConfig(path)
	require.NoError(t, err)
	require.NotNil(t, fileCfg)

	assert.Equal(t, DefaultOllamaHost, fileCfg.Ollama.Host)
	assert.Equal(t, DefaultModel, fileCfg.Ollama.Model)
	assert.Equal(t, DefaultPrompt, fileCfg.Generate.Prompt)
	assert.Nil(t, fileCfg.Options.Temperature)
}

func TestLoadWritesTemplateOnFirstRun(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OLLAMACHECK_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(home, ".config", "ollamacheck", "settings.toml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, GenerateSettingsTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCheckDebug(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("OLLAMACHECK_DEBUG", tt.value)
			assert.Equal(t, tt.want, CheckDebug())
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/.config/x", ExpandPath("~/.config/x"))
	assert.Equal(t, "", ExpandPath(""))
}
