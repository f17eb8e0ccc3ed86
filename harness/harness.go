// Package harness verifies that an Ollama-compatible inference service honors
// the minimal contract a chat front end depends on: listing models and
// generating a completion for a prompt.
//
// # Outcomes
//
// Each check resolves to PASS, SKIP or FAIL. An unreachable service or a
// missing model is an environment condition and resolves to SKIP; any other
// unexpected status or body is a contract violation and resolves to FAIL.
//
// # Checks
//
//   - Connectivity: GET /api/tags returns 200 with a "models" key
//   - Generation: POST /api/generate returns 200 with a "response" key
//   - Persistence: canned responses replace both endpoints; nothing about
//     persisted chat state is asserted
//
// Checks run sequentially and never retry.
//
// # Usage
//
//	h, err := harness.New(harness.Options{Endpoint: "http://localhost:11434"})
//	if err != nil {
//	    // handle error
//	}
//	report := h.Run(ctx)
//	if report.Failed() {
//	    os.Exit(1)
//	}
package harness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"

	"ollamacheck/chat"
	"ollamacheck/config"
	"ollamacheck/ollama"
)

// Options configures a Harness. Zero values fall back to the defaults in
// the config package, http.DefaultClient and os.Stdout.
type Options struct {
	Endpoint      string
	Model         string
	Prompt        string
	SampleOptions *chat.Options
	HTTPClient    *http.Client
	Output        io.Writer
}

type Harness struct {
	client   *ollama.Client
	history  []chat.Message
	request  ollama.GenerateRequest
	reporter *Reporter
}

func New(opts Options) (*Harness, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = config.DefaultOllamaHost
	}
	if opts.Model == "" {
		opts.Model = config.DefaultModel
	}
	if opts.Prompt == "" {
		opts.Prompt = config.DefaultPrompt
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	client, err := ollama.NewClient(opts.Endpoint, opts.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	request := ollama.GenerateRequest{
		Model:  opts.Model,
		Prompt: opts.Prompt,
		Stream: false,
	}
	if opts.SampleOptions != nil {
		request.Options = opts.SampleOptions.Map()
	}

	return &Harness{
		client:   client,
		history:  []chat.Message{{Role: chat.RoleUser, Content: opts.Prompt}},
		request:  request,
		reporter: NewReporter(opts.Output),
	}, nil
}

// FromConfig builds a Harness from loaded configuration. Sampling options
// left unset in the config take the front end's defaults.
func FromConfig(cfg *config.Config, out io.Writer) (*Harness, error) {
	opts := Options{
		Endpoint: cfg.OllamaURL(),
		Model:    cfg.Model,
		Prompt:   cfg.Prompt,
		Output:   out,
	}

	if cfg.HasOptions() {
		sample := chat.DefaultOptions()
		if cfg.Options.Temperature != nil {
			sample.Temperature = *cfg.Options.Temperature
		}
		if cfg.Options.TopK != nil {
			sample.TopK = *cfg.Options.TopK
		}
		if cfg.Options.TopP != nil {
			sample.TopP = *cfg.Options.TopP
		}
		opts.SampleOptions = &sample
	}

	return New(opts)
}

func (h *Harness) Endpoint() string {
	return h.client.BaseURL()
}

// Session names the chat the generation check sends, titled the way the
// front end titles its sessions.
func (h *Harness) Session() string {
	return chat.Title(h.history)
}

// Banner prints the line announcing a run.
func (h *Harness) Banner() {
	h.reporter.Note(fmt.Sprintf("🧪 Running Ollama API contract tests against %s", h.Endpoint()))
}

// Run executes every check in order and prints a summary line.
func (h *Harness) Run(ctx context.Context) Report {
	report := Report{
		RunID:    uuid.NewString(),
		Endpoint: h.Endpoint(),
		Session:  h.Session(),
	}
	h.Banner()
	config.DebugLog.Debug("contract run started", "run", report.RunID, "endpoint", report.Endpoint)

	report.Results = append(report.Results, h.Connectivity(ctx))
	report.Results = append(report.Results, h.Generation(ctx))
	report.Results = append(report.Results, h.Persistence(ctx))

	h.reporter.Summary(report)
	return report
}
