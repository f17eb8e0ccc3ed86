package testutil

import (
	"net/http"

	"ollamacheck/harness"
)

const (
	ModelsBody   = `{"models":[{"name":"llama2"}]}`
	GenerateBody = `{"response":"Hi there"}`
	NotFoundBody = `{"error":"model 'llama2' not found, try pulling it first"}`
	ServerError  = `{"error":"llama runner process has terminated"}`
)

// Tags returns a canned GET /api/tags answer.
func Tags(status int, body string) harness.CannedResponse {
	return harness.CannedResponse{
		Method:     http.MethodGet,
		Path:       "/api/tags",
		StatusCode: status,
		Body:       body,
	}
}

// Generate returns a canned POST /api/generate answer.
func Generate(status int, body string) harness.CannedResponse {
	return harness.CannedResponse{
		Method:     http.MethodPost,
		Path:       "/api/generate",
		StatusCode: status,
		Body:       body,
	}
}

// HealthyOllama answers both endpoints the way a server with llama2 pulled does.
func HealthyOllama() []harness.CannedResponse {
	return []harness.CannedResponse{
		Tags(http.StatusOK, ModelsBody),
		Generate(http.StatusOK, GenerateBody),
	}
}
