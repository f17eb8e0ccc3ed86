package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

const (
	DefaultOllamaHost = "http://localhost:11434"
	DefaultModel      = "llama2"
	DefaultPrompt     = "Hello, how are you?"
)

type OllamaConfig struct {
	Host  string `toml:"host"`
	Model string `toml:"model"`
}

type GenerateConfig struct {
	Prompt string `toml:"prompt"`
}

// OptionsConfig holds optional sampling parameters. Pointers distinguish
// "unset" from zero so an absent table leaves the request body untouched.
type OptionsConfig struct {
	Temperature *float64 `toml:"temperature,omitempty"`
	TopK        *int     `toml:"top_k,omitempty"`
	TopP        *float64 `toml:"top_p,omitempty"`
}

type FileConfig struct {
	Ollama   OllamaConfig   `toml:"ollama"`
	Generate GenerateConfig `toml:"generate"`
	Options  OptionsConfig  `toml:"options"`
}

type Config struct {
	OllamaHost string
	Model      string
	Prompt     string
	Options    OptionsConfig
}

var Debug = false
var DebugLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func (c *Config) OllamaURL() string {
	return c.OllamaHost
}

// HasOptions reports whether any sampling option was configured.
func (c *Config) HasOptions() bool {
	return c.Options.Temperature != nil || c.Options.TopK != nil || c.Options.TopP != nil
}

func (c *Config) applyFile(f *FileConfig) {
	if f.Ollama.Host != "" {
		c.OllamaHost = f.Ollama.Host
	}
	if f.Ollama.Model != "" {
		c.Model = f.Ollama.Model
	}
	if f.Generate.Prompt != "" {
		c.Prompt = f.Generate.Prompt
	}
	c.Options = f.Options
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("OLLAMACHECK_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if model := os.Getenv("OLLAMACHECK_MODEL"); model != "" {
		c.Model = model
	}
	if prompt := os.Getenv("OLLAMACHECK_PROMPT"); prompt != "" {
		c.Prompt = prompt
	}
}

func CheckDebug() bool {
	debug, err := strconv.ParseBool(os.Getenv("OLLAMACHECK_DEBUG"))
	return err == nil && debug
}

// InitDebugLog points DebugLog at w when OLLAMACHECK_DEBUG is set.
func InitDebugLog(w io.Writer) {
	if !CheckDebug() {
		return
	}

	Debug = true
	DebugLog = slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	}))
	DebugLog.Debug("debug logging started", "OLLAMACHECK_DEBUG", os.Getenv("OLLAMACHECK_DEBUG"))
}

func Default() *Config {
	return &Config{
		OllamaHost: DefaultOllamaHost,
		Model:      DefaultModel,
		Prompt:     DefaultPrompt,
	}
}

// Load resolves configuration as defaults, then the settings file, then the
// environment. A missing settings file or .env is not an error.
func Load() (*Config, error) {
	if FileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := Default()
	settingsPath := GetSettingsFilePath()

	// First run without an explicit path leaves a commented template behind.
	// The defaults already apply, so failing to write it is only logged.
	if os.Getenv("OLLAMACHECK_CONFIG") == "" && !FileExists(settingsPath) {
		if err := CreateDefaultFileConfig(settingsPath); err != nil {
			DebugLog.Debug("could not write settings template", "path", settingsPath, "error", err)
		}
	}

	fileCfg, err := LoadFileConfig(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if fileCfg != nil {
		cfg.applyFile(fileCfg)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}
