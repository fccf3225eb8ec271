package summary

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const defaultSystemInstruction = "You are a supportive academic mentor. Base every statement on the data provided and do not invent marks."

// GeminiConfig holds the settings of the Gemini summarizer.
type GeminiConfig struct {
	APIKey            string
	Model             string
	Temperature       float32
	SystemInstruction string
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:            apiKey,
		Model:             "gemini-2.0-flash",
		Temperature:       0.4,
		SystemInstruction: defaultSystemInstruction,
	}
}

// GeminiSummarizer generates summaries using Google's Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiSummarizer creates a Gemini-backed Summarizer.
func NewGeminiSummarizer(ctx context.Context, cfg GeminiConfig) (*GeminiSummarizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiConfig("").Model
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(cfg.Temperature),
	}
	if cfg.SystemInstruction != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}

	return &GeminiSummarizer{
		client: client,
		model:  cfg.Model,
		config: genConfig,
	}, nil
}

// Summarize sends the prompt as a single user turn and returns the model text unmodified.
func (g *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

// Name returns the summarizer name.
func (g *GeminiSummarizer) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}
