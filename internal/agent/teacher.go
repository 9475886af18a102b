package agent

import (
	"context"

	"github.com/ashureev/scaffolder/internal/competency"
	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/ashureev/scaffolder/internal/llm"
)

// Teacher is the Socratic literature teacher. It sees all three axes.
type Teacher struct {
	base
	table *competency.Table
}

// NewTeacher creates the teacher persona.
func NewTeacher(client llm.Client, table *competency.Table) *Teacher {
	return &Teacher{
		base:  base{name: NameTeacher, persona: "교사", client: client},
		table: table,
	}
}

type teacherData struct {
	Reader  string
	Title   string
	Content string
	Gaps    []competency.Gap
}

// SystemPrompt renders the teacher's instructions for state.
func (t *Teacher) SystemPrompt(state *domain.SessionState) (string, error) {
	return render(teacherPrompt, teacherData{
		Reader:  state.ReaderName(),
		Title:   state.Poem.Title,
		Content: state.Poem.Content,
		Gaps:    t.table.Gaps(state.Level),
	})
}

// Respond implements Agent.
func (t *Teacher) Respond(ctx context.Context, state *domain.SessionState, input string) string {
	system, err := t.SystemPrompt(state)
	if err != nil {
		return t.soft("", err)
	}
	msgs := conversation(system, state.History, orPlaceholder(input, TeacherOpening))
	return t.soft(t.complete(ctx, msgs, ChatTemperature))
}
