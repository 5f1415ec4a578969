// Package ai wraps the Gemini API for chat reply generation. The generator
// is an optional enhancement: when disabled or failing, callers fall back to
// a templated reply instead of failing the request.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"
	maxRecTitles = 6
	maxWeakTags  = 5
)

const systemPrompt = "You are a helpful coding tutor assistant. Be concise and actionable. " +
	"When a user asks for problem recommendations, provide a short study plan (2-3 steps), " +
	"explain why the recommended problems help, and list the top recommended problem titles. " +
	"Do not invent problem content; only reference titles provided in context."

// ReplyGenerator produces conversational replies for the chat endpoint.
type ReplyGenerator struct {
	client    *genai.Client
	modelName string
}

// NewReplyGenerator builds a generator for the Gemini API backend. An empty
// API key returns (nil, nil): the feature is simply disabled.
func NewReplyGenerator(ctx context.Context, apiKey, model string) (*ReplyGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &ReplyGenerator{client: client, modelName: model}, nil
}

// Enabled reports whether reply generation is available.
func (g *ReplyGenerator) Enabled() bool {
	return g != nil && g.client != nil
}

// GenerateReply asks the model for a reply grounded on the weak topics and
// candidate problem titles computed by the recommender.
func (g *ReplyGenerator) GenerateReply(ctx context.Context, userMessage string, weakTopics, recTitles []string) (string, error) {
	if !g.Enabled() {
		return "", errors.New("reply generator is disabled")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nUser message: %s\n", systemPrompt, strings.TrimSpace(userMessage))
	if len(weakTopics) > 0 {
		if len(weakTopics) > maxWeakTags {
			weakTopics = weakTopics[:maxWeakTags]
		}
		fmt.Fprintf(&b, "Weak topics: %s\n", strings.Join(weakTopics, ", "))
	}
	if len(recTitles) > 0 {
		if len(recTitles) > maxRecTitles {
			recTitles = recTitles[:maxRecTitles]
		}
		fmt.Fprintf(&b, "Candidate problems: %s\n", strings.Join(recTitles, ", "))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(b.String()), nil)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	var out strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if out.Len() > 0 {
				out.WriteString("\n")
			}
			out.WriteString(strings.TrimSpace(part.Text))
		}
	}
	reply := strings.TrimSpace(out.String())
	if reply == "" {
		return "", errors.New("gemini returned an empty reply")
	}
	return reply, nil
}
