package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient talks to the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed Client. Retries are disabled: every
// call is a single attempt.
func NewOpenAI(apiKey, model, baseURL string, timeout time.Duration) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("openai: model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client, model: model}, nil
}

// Complete sends the conversation and returns the first choice's text.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.Message, temperature float64) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(temperature),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	return openAIText(resp)
}

// openAIText extracts the first choice's text. A blank choice is an error
// naming the refusal or finish reason.
func openAIText(resp *openai.ChatCompletion) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	choice := resp.Choices[0]
	if strings.TrimSpace(choice.Message.Content) != "" {
		return choice.Message.Content, nil
	}
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("openai: %w: refusal: %s", ErrEmptyResponse, choice.Message.Refusal)
	}
	return "", fmt.Errorf("openai: %w: finish_reason=%s", ErrEmptyResponse, choice.FinishReason)
}

func toOpenAIMessages(messages []domain.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
