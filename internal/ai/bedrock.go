// Package ai provides AI integration for themed word suggestions.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// BedrockClientInterface defines the interface for Bedrock client.
type BedrockClientInterface interface {
	InvokeModel(ctx context.Context, modelID string, prompt string) (string, error)
}

// Suggestion limits.
const (
	MinWordLength      = 3
	MaxWordLength      = 12
	MaxSuggestions     = 20
	DefaultSuggestions = 8
)

// ErrEmptyResponse is returned when the model answers without usable words.
var ErrEmptyResponse = errors.New("empty content in response")

// BedrockClient wraps the Bedrock client for word suggestions.
type BedrockClient struct {
	client          BedrockClientInterface
	modelID         string
	fallbackEnabled bool
}

// ClaudeResponse represents the response from Claude.
type ClaudeResponse struct {
	Content []ContentBlock `json:"content"`
}

// ContentBlock represents a content block in Claude's response.
type ContentBlock struct {
	Text string `json:"text"`
}

// Claude 3 Haiku model ID
const claudeHaikuModelID = "anthropic.claude-3-haiku-20240307-v1:0"

// NewBedrockClient creates a new BedrockClient. An empty modelID selects
// Claude 3 Haiku.
func NewBedrockClient(client BedrockClientInterface, modelID string) *BedrockClient {
	if modelID == "" {
		modelID = claudeHaikuModelID
	}
	return &BedrockClient{
		client:          client,
		modelID:         modelID,
		fallbackEnabled: false,
	}
}

// EnableFallback enables or disables fallback mode.
// When enabled, returns a built-in word list instead of error when API fails.
func (c *BedrockClient) EnableFallback(enabled bool) {
	c.fallbackEnabled = enabled
}

// ModelID returns the model used for suggestions.
func (c *BedrockClient) ModelID() string {
	return c.modelID
}

// SuggestWords asks the model for count words on theme. Words are lowercase
// a-z only, MinWordLength..MaxWordLength long and unique.
func (c *BedrockClient) SuggestWords(ctx context.Context, theme string, count int) ([]string, error) {
	count = clampCount(count)
	theme = strings.TrimSpace(theme)

	if c.client == nil {
		if c.fallbackEnabled {
			return fallbackWords(theme, count), nil
		}
		return nil, errors.New("bedrock client not configured")
	}

	response, err := c.client.InvokeModel(ctx, c.modelID, c.buildPrompt(theme, count))
	if err != nil {
		if c.fallbackEnabled {
			return fallbackWords(theme, count), nil
		}
		return nil, fmt.Errorf("failed to invoke Bedrock: %w", err)
	}

	words, err := c.parseResponse(response)
	if err != nil {
		if c.fallbackEnabled {
			return fallbackWords(theme, count), nil
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(words) > count {
		words = words[:count]
	}
	return words, nil
}

// buildPrompt creates the prompt for word suggestions.
func (c *BedrockClient) buildPrompt(theme string, count int) string {
	return fmt.Sprintf(`You help build word search puzzles.
Suggest %d different English words about the theme below.
Use single words only, lowercase letters a-z, %d to %d letters long.
Answer with a JSON array of strings and nothing else.

Theme: %s`, count, MinWordLength, MaxWordLength, theme)
}

// parseResponse parses the Claude response JSON and the word array inside it.
func (c *BedrockClient) parseResponse(response string) ([]string, error) {
	var claudeResp ClaudeResponse
	if err := json.Unmarshal([]byte(response), &claudeResp); err != nil {
		return nil, err
	}

	if len(claudeResp.Content) == 0 {
		return nil, ErrEmptyResponse
	}

	text := claudeResp.Content[0].Text
	// The model sometimes wraps the array in prose.
	start, end := strings.Index(text, "["), strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no word list in %q", text)
	}

	var raw []string
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}

	words := SanitizeWords(raw)
	if len(words) == 0 {
		return nil, ErrEmptyResponse
	}
	return words, nil
}

// SanitizeWords lowercases, drops anything that is not a single a-z word of
// an acceptable length, and removes duplicates keeping the first occurrence.
func SanitizeWords(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) < MinWordLength || len(w) > MaxWordLength || !isLetters(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

func isLetters(w string) bool {
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func clampCount(count int) int {
	if count <= 0 {
		return DefaultSuggestions
	}
	return min(count, MaxSuggestions)
}
