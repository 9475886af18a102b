package agent

import (
	"context"

	"github.com/ashureev/scaffolder/internal/domain"
)

// Agent turns the session context and one reader utterance into a single
// model call. Respond never fails: a model error comes back as a tagged
// failure string naming the persona.
type Agent interface {
	// Name is the wire key of the agent.
	Name() Name

	// Persona is the display name used in failure tags.
	Persona() string

	// Respond produces the agent's next turn from state.History plus input.
	Respond(ctx context.Context, state *domain.SessionState, input string) string
}

var (
	_ Agent = (*Teacher)(nil)
	_ Agent = (*Critic)(nil)
	_ Agent = (*Tutor)(nil)
)
