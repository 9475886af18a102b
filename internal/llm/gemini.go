package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ashureev/scaffolder/internal/domain"
	"google.golang.org/genai"
)

// GeminiClient talks to the Gemini API through the genai SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini-backed Client.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

// Complete sends the conversation and returns the response text. System
// messages are joined into the system instruction.
func (c *GeminiClient) Complete(ctx context.Context, messages []domain.Message, temperature float64) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	system, contents := toGeminiContents(messages)
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temperature)),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return geminiText(resp)
}

// geminiText extracts the response text. A blocked prompt or an empty
// candidate is an error naming the block or finish reason.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini: %w: block_reason=%s", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	if text := resp.Text(); strings.TrimSpace(text) != "" {
		return text, nil
	}
	return "", fmt.Errorf("gemini: %w: finish_reason=%s", ErrEmptyResponse, resp.Candidates[0].FinishReason)
}

func toGeminiContents(messages []domain.Message) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, m.Content)
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}
