package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ashureev/scaffolder/internal/competency"
	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/ashureev/scaffolder/internal/llm"
	"golang.org/x/sync/errgroup"
)

// Critique holds the two opposing essays.
type Critique struct {
	CriticA string `json:"critic_a"`
	CriticB string `json:"critic_b"`
}

// TutorReplies holds one reply per tutor. A failed tutor's slot carries
// its tagged failure string.
type TutorReplies struct {
	Empathy      string `json:"empathy"`
	Aesthetic    string `json:"aesthetic"`
	Interpretive string `json:"interpretive"`
}

// Service dispatches reader turns to the personas.
type Service struct {
	teacher *Teacher
	criticA *Critic
	criticB *Critic
	tutors  []*Tutor
	chat    map[Name]Agent
}

// NewService builds every persona on top of one model client.
func NewService(client llm.Client, table *competency.Table) *Service {
	s := &Service{
		teacher: NewTeacher(client, table),
		criticA: NewCriticA(client),
		criticB: NewCriticB(client),
		tutors:  NewTutors(client, table),
	}
	s.chat = map[Name]Agent{
		NameTeacher: s.teacher,
		NameCriticA: s.criticA,
		NameCriticB: s.criticB,
	}
	return s
}

// Agent looks up a persona reachable through the per-agent chat route.
func (s *Service) Agent(name string) (Agent, error) {
	a, ok := s.chat[Name(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, name)
	}
	return a, nil
}

// Teacher runs one teacher turn. An empty history always opens with the
// fixed greeting instruction, whatever input was sent.
func (s *Service) Teacher(ctx context.Context, state *domain.SessionState, input string) string {
	if state.IsFirstTurn() {
		input = TeacherOpening
	}
	return s.teacher.Respond(ctx, state, input)
}

// Critique has critic A write its essay, then critic B answer it. When A
// fails, B receives nothing and reports NotReceived.
func (s *Service) Critique(ctx context.Context, poem domain.Poem) Critique {
	essayA, err := s.criticA.WriteEssay(ctx, poem, "")
	prior := essayA
	if err != nil {
		prior = ""
	}
	essayB, _ := s.criticB.WriteEssay(ctx, poem, prior)
	return Critique{CriticA: essayA, CriticB: essayB}
}

// Multi sends input to all three tutors concurrently and waits for every
// reply. A failing tutor never affects the other two.
func (s *Service) Multi(ctx context.Context, state *domain.SessionState, input string) TutorReplies {
	replies := make([]string, len(s.tutors))

	var g errgroup.Group
	for i, t := range s.tutors {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Tutor panicked", "agent", t.Name(), "panic", r)
					replies[i] = FailureText(t.Persona(), fmt.Errorf("panic: %v", r))
				}
			}()
			replies[i] = t.Respond(ctx, state, input)
			return nil
		})
	}
	_ = g.Wait()

	return TutorReplies{
		Empathy:      replies[0],
		Aesthetic:    replies[1],
		Interpretive: replies[2],
	}
}
