// Package chat holds the transcript conventions of the Ollama chat front end
// whose backend contract the harness verifies: how a session is titled, how
// history is flattened into a generate prompt, and which sampling options
// accompany it.
package chat

import (
	"strings"
	"unicode/utf16"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "ai"

	DefaultTitle   = "New Chat"
	maxTitleLength = 50
)

// Message is one entry of a chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Title names a session after its first user message. The first user message
// decides: if it is blank the session stays "New Chat" even when later user
// messages have content.
func Title(messages []Message) string {
	for _, msg := range messages {
		if msg.Role != RoleUser {
			continue
		}

		trimmed := strings.TrimSpace(msg.Content)
		if trimmed == "" {
			return DefaultTitle
		}
		return truncateTitle(trimmed)
	}

	return DefaultTitle
}

// truncateTitle cuts s to maxTitleLength UTF-16 code units, the unit the
// front end measures titles in. A surrogate pair split by the cut is dropped.
func truncateTitle(s string) string {
	units := utf16.Encode([]rune(s))
	if len(units) <= maxTitleLength {
		return s
	}

	cut := units[:maxTitleLength]
	if last := rune(cut[len(cut)-1]); last >= 0xD800 && last < 0xDC00 {
		cut = cut[:len(cut)-1]
	}
	return string(utf16.Decode(cut)) + "..."
}

// Transcript flattens a history into the "role: content" prompt sent to
// /api/generate.
func Transcript(messages []Message) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = msg.Role + ": " + msg.Content
	}
	return strings.Join(lines, "\n")
}

// Options are the sampling parameters exposed by the front end.
type Options struct {
	Temperature float64
	TopK        int
	TopP        float64
}

func DefaultOptions() Options {
	return Options{
		Temperature: 0.7,
		TopK:        50,
		TopP:        0.9,
	}
}

// Map returns the options in the shape of Ollama's "options" object.
func (o Options) Map() map[string]any {
	return map[string]any{
		"temperature": o.Temperature,
		"top_k":       o.TopK,
		"top_p":       o.TopP,
	}
}
