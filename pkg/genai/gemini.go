// Package genai is a thin text-in/text-out client for the Gemini API.
package genai

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("generative text service not configured")

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

const callTimeout = 30 * time.Second

// Gemini generates text with a single model.
type Gemini struct {
	svc   *generativelanguage.Service
	model string
}

// NewGemini builds a client. extra options are appended after the API key
// (tests point the client at a local endpoint).
func NewGemini(ctx context.Context, apiKey, model string, extra ...option.ClientOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}
	return &Gemini{svc: svc, model: model}, nil
}

// Generate sends prompt as a single user turn and returns the concatenated text parts.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.svc == nil {
		return "", ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: prompt}},
		}},
	}
	resp, err := g.svc.Models.GenerateContent(g.model, req).Context(ctx).Do()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p != nil {
				b.WriteString(p.Text)
			}
		}
		// first candidate with content wins
		if b.Len() > 0 {
			break
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
