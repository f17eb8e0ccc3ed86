package config

func GenerateSettingsTemplate() string {
	return `# ollamacheck settings
# Location: ~/.config/ollamacheck/settings.toml (or $OLLAMACHECK_CONFIG)
# This file uses TOML format: https://toml.io

[ollama]
# Base URL of the inference server under test
host = "http://localhost:11434"

# Model named in the generation check
model = "llama2"

[generate]
prompt = "Hello, how are you?"

# Sampling options (optional). When none are set the generation request
# carries only model, prompt and stream.
[options]
# temperature = 0.7
# top_k = 50
# top_p = 0.9
`
}
