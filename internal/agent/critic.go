package agent

import (
	"context"
	"strings"

	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/ashureev/scaffolder/internal/llm"
)

// Critic is one of the two opposing critics. Critic A writes the first
// essay; critic B writes a counter-essay from A's text.
type Critic struct {
	base
	counter bool
}

// NewCriticA creates the critic that writes the initial essay.
func NewCriticA(client llm.Client) *Critic {
	return &Critic{base: base{name: NameCriticA, persona: "비평가 A", client: client}}
}

// NewCriticB creates the critic that answers critic A.
func NewCriticB(client llm.Client) *Critic {
	return &Critic{base: base{name: NameCriticB, persona: "비평가 B", client: client}, counter: true}
}

type essayData struct {
	Title   string
	Content string
	EssayA  string
}

// WriteEssay produces the critic's essay on poem. prior is critic A's
// essay and is only read by critic B; when it is blank, critic B answers
// NotReceived without calling the model. On failure the returned text is
// the tagged failure string and err is set.
func (c *Critic) WriteEssay(ctx context.Context, poem domain.Poem, prior string) (string, error) {
	data := essayData{Title: poem.Title, Content: poem.Content, EssayA: prior}

	tmpl := essayPrompt
	if c.counter {
		if strings.TrimSpace(prior) == "" {
			return NotReceived, nil
		}
		tmpl = counterPrompt
	}

	system, err := render(tmpl, data)
	if err != nil {
		return c.soft("", err), err
	}
	msgs := []domain.Message{
		{Role: domain.RoleSystem, Content: system},
		{Role: domain.RoleUser, Content: poem.Content},
	}
	reply, err := c.complete(ctx, msgs, EssayTemperature)
	return c.soft(reply, err), err
}

type criticChatData struct {
	Persona string
	Reader  string
	Title   string
	Content string
}

// Respond implements Agent. state.History is this critic's own history,
// which starts with its essay.
func (c *Critic) Respond(ctx context.Context, state *domain.SessionState, input string) string {
	system, err := render(criticPrompt, criticChatData{
		Persona: c.persona,
		Reader:  state.ReaderName(),
		Title:   state.Poem.Title,
		Content: state.Poem.Content,
	})
	if err != nil {
		return c.soft("", err)
	}
	msgs := conversation(system, state.History, orPlaceholder(input, CriticOpening))
	return c.soft(c.complete(ctx, msgs, ChatTemperature))
}
