package harness

import (
	"context"
	"fmt"
	"net/http"

	"ollamacheck/chat"
	"ollamacheck/config"
	"ollamacheck/ollama"
)

// Connectivity checks that GET /api/tags answers 200 with a "models" key.
func (h *Harness) Connectivity(ctx context.Context) Result {
	resp, err := h.client.Tags(ctx)
	if err != nil {
		return h.transportFailure(CheckConnectivity, "Ollama API connection", err)
	}
	config.DebugLog.Debug("GET /api/tags", "status", resp.StatusCode, "bytes", len(resp.Body))

	if err := expectField(resp, "models"); err != nil {
		return h.failed(CheckConnectivity, "Ollama API connection", err)
	}

	if config.Debug {
		if names, err := resp.ModelNames(); err == nil {
			config.DebugLog.Debug("models available", "count", len(names), "names", names)
		}
	}

	h.reporter.Pass("✅ Ollama API connection successful")
	return newResult(CheckConnectivity, "", nil)
}

// Generation checks that POST /api/generate answers 200 with a "response"
// key. A 404 means the model is not installed and skips the check whatever
// the body says.
func (h *Harness) Generation(ctx context.Context) Result {
	if config.Debug {
		config.DebugLog.Debug("generate transcript", "prompt", chat.Transcript(h.history))
	}

	resp, err := h.client.Generate(ctx, h.request)
	if err != nil {
		return h.transportFailure(CheckGeneration, "Ollama generate endpoint", err)
	}
	config.DebugLog.Debug("POST /api/generate", "model", h.request.Model, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		h.reporter.Skip(fmt.Sprintf("❌ Model '%s' not found, skipping test", h.request.Model))
		err := fmt.Errorf("%w: model %q: %w", ErrResourceUnavailable, h.request.Model, resp.StatusError())
		return newResult(CheckGeneration, ReasonModelUnavailable, err)
	}

	if err := expectField(resp, "response"); err != nil {
		return h.failed(CheckGeneration, "Ollama generate endpoint", err)
	}

	if config.Debug {
		if text, err := resp.Text(); err == nil {
			config.DebugLog.Debug("generate reply", "session", chat.Title(h.history), "reply_bytes", len(text))
		}
	}

	h.reporter.Pass("✅ Ollama generate endpoint working")
	return newResult(CheckGeneration, "", nil)
}

// expectField requires a 200 status and a JSON object body carrying key.
func expectField(resp *ollama.Response, key string) error {
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: expected status 200: %w", ErrContractViolation, resp.StatusError())
	}
	if !resp.IsJSON() {
		return fmt.Errorf("%w: response body is not valid JSON", ErrContractViolation)
	}
	if !resp.Has(key) {
		return fmt.Errorf("%w: response body has no %q key", ErrContractViolation, key)
	}
	return nil
}

func (h *Harness) transportFailure(check, subject string, err error) Result {
	if ollama.IsUnreachable(err) {
		h.reporter.Skip("❌ Ollama API connection failed - service might not be running")
		config.DebugLog.Debug("service unreachable", "check", check, "error", err)
		return newResult(check, ReasonServiceDown, fmt.Errorf("%w: %w", ErrEnvironmentUnavailable, err))
	}
	return h.failed(check, subject, fmt.Errorf("%w: %w", ErrContractViolation, err))
}

func (h *Harness) failed(check, subject string, err error) Result {
	h.reporter.Fail(fmt.Sprintf("❌ %s check failed: %v", subject, err))
	return newResult(check, err.Error(), err)
}
