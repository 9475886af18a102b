package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

type stubClient struct{}

func (stubClient) Complete(context.Context, []domain.Message, float64) (string, error) {
	return "ok", nil
}

func TestRegistryOpen(t *testing.T) {
	reg := NewRegistry()
	reg.Register(" OpenAI ", func(context.Context) (Client, error) { return stubClient{}, nil })

	c, err := reg.Open(context.Background(), "openai")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, _ := c.Complete(context.Background(), nil, 0.7); got != "ok" {
		t.Fatalf("unexpected completion %q", got)
	}

	if _, err := reg.Open(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestToOpenAIMessagesKeepsOrderAndRoles(t *testing.T) {
	msgs := []domain.Message{
		{Role: domain.RoleSystem, Content: "rules"},
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
	}
	out := toOpenAIMessages(msgs)
	if len(out) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(out))
	}
	if out[0].OfSystem == nil || out[1].OfUser == nil || out[2].OfAssistant == nil {
		t.Fatalf("roles were not mapped in order: %+v", out)
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI("", "gpt-4o", "", 0); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestToGeminiContentsSplitsSystem(t *testing.T) {
	system, contents := toGeminiContents([]domain.Message{
		{Role: domain.RoleSystem, Content: "rules"},
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
	})
	if system != "rules" {
		t.Fatalf("system = %q", system)
	}
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != string(genai.RoleUser) || contents[1].Role != string(genai.RoleModel) {
		t.Fatalf("unexpected roles %q, %q", contents[0].Role, contents[1].Role)
	}
}

func TestOpenAITextRejectsBlankChoice(t *testing.T) {
	got, err := openAIText(&openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Content: "안녕"}},
	}})
	if err != nil || got != "안녕" {
		t.Fatalf("openAIText = %q, %v", got, err)
	}

	_, err = openAIText(&openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{
		{FinishReason: "stop", Message: openai.ChatCompletionMessage{Refusal: "I can't help with that."}},
	}})
	if !errors.Is(err, ErrEmptyResponse) || !strings.Contains(err.Error(), "I can't help with that.") {
		t.Fatalf("refusal error = %v", err)
	}

	_, err = openAIText(&openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{
		{FinishReason: "content_filter", Message: openai.ChatCompletionMessage{Content: "  "}},
	}})
	if !errors.Is(err, ErrEmptyResponse) || !strings.Contains(err.Error(), "content_filter") {
		t.Fatalf("blank content error = %v", err)
	}

	if _, err := openAIText(&openai.ChatCompletion{}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("no choices error = %v", err)
	}
}

func TestGeminiTextRejectsBlockedCandidate(t *testing.T) {
	got, err := geminiText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: genai.NewContentFromText("안녕", genai.RoleModel)},
	}})
	if err != nil || got != "안녕" {
		t.Fatalf("geminiText = %q, %v", got, err)
	}

	_, err = geminiText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{FinishReason: genai.FinishReasonSafety},
	}})
	if !errors.Is(err, ErrEmptyResponse) || !strings.Contains(err.Error(), "SAFETY") {
		t.Fatalf("blocked candidate error = %v", err)
	}

	_, err = geminiText(&genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
	})
	if !errors.Is(err, ErrEmptyResponse) || !strings.Contains(err.Error(), "block_reason=SAFETY") {
		t.Fatalf("blocked prompt error = %v", err)
	}
}
