// Package agent implements the tutoring personas and the orchestration
// that dispatches reader turns to them.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/ashureev/scaffolder/internal/llm"
)

// Name is the wire key of an agent.
type Name string

const (
	NameTeacher      Name = "teacher"
	NameCriticA      Name = "criticA"
	NameCriticB      Name = "criticB"
	NameEmpathy      Name = "empathy"
	NameAesthetic    Name = "aesthetic"
	NameInterpretive Name = "interpretive"
)

// Sampling temperatures.
const (
	ChatTemperature  = 0.7
	EssayTemperature = 0.8
)

// NotReceived is critic B's answer when critic A's essay is missing.
const NotReceived = "전달받지 못함"

// ErrUnknownAgent is returned when a route names an agent that does not exist.
var ErrUnknownAgent = errors.New("unknown agent")

// FailureText formats the in-band error string returned instead of model output.
func FailureText(persona string, err error) string {
	return fmt.Sprintf("[%s] 에러 발생: %v", persona, err)
}

// base holds what every persona shares: a display name and the model.
type base struct {
	name    Name
	persona string
	client  llm.Client
}

func (b *base) Name() Name      { return b.name }
func (b *base) Persona() string { return b.persona }

// complete issues exactly one model call. A blank reply counts as a failure.
func (b *base) complete(ctx context.Context, messages []domain.Message, temperature float64) (string, error) {
	reply, err := b.client.Complete(ctx, messages, temperature)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		slog.Warn("Agent call failed", "agent", b.name, "error", err)
		return "", err
	}
	return reply, nil
}

// soft converts a failed call into the tagged failure string.
func (b *base) soft(reply string, err error) string {
	if err != nil {
		return FailureText(b.persona, err)
	}
	return reply
}

// conversation lays out system prompt, prior history, then the new utterance.
func conversation(system string, history []domain.Message, input string) []domain.Message {
	msgs := make([]domain.Message, 0, len(history)+2)
	msgs = append(msgs, domain.Message{Role: domain.RoleSystem, Content: system})
	msgs = append(msgs, history...)
	msgs = append(msgs, domain.Message{Role: domain.RoleUser, Content: input})
	return msgs
}

// orPlaceholder substitutes the opening instruction for a blank utterance.
func orPlaceholder(input, placeholder string) string {
	if strings.TrimSpace(input) == "" {
		return placeholder
	}
	return input
}
