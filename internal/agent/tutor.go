package agent

import (
	"context"

	"github.com/ashureev/scaffolder/internal/competency"
	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/ashureev/scaffolder/internal/llm"
)

// Tutor owns a single competency axis and shares its history with the
// other two tutors.
type Tutor struct {
	base
	axis      competency.Axis
	table     *competency.Table
	scope     []string
	forbidden []string
}

type tutorSpec struct {
	name      Name
	persona   string
	axis      competency.Axis
	scope     []string
	forbidden []string
}

var tutorSpecs = []tutorSpec{
	{
		name:    NameEmpathy,
		persona: "공감 튜터",
		axis:    competency.Empathy,
		scope: []string{
			"화자나 인물이 느끼는 감정, 생각, 동기",
			"독자 자신의 경험이나 기억과 시의 상황을 연결하는 질문",
			"화자의 처지에 독자가 서 보았을 때 드는 느낌",
		},
		forbidden: []string{
			"운율, 반복, 비유, 이미지 등 표현 방식이나 형식에 대한 질문",
			"시어의 선택이나 문장 구조가 주는 효과에 대한 질문",
			"시의 숨은 의미, 주제, 상징이 가리키는 대상에 대한 질문",
			"창작 배경이나 시대적 맥락을 끌어와 의미를 추론하게 하는 질문",
		},
	},
	{
		name:    NameAesthetic,
		persona: "미학 튜터",
		axis:    competency.Aesthetic,
		scope: []string{
			"시어의 선택, 반복, 운율, 행과 연의 구성",
			"비유, 이미지, 감각적 표현이 만드는 분위기",
			"표현 방식이 독자에게 주는 느낌의 차이",
		},
		forbidden: []string{
			"화자나 인물의 감정에 공감하거나 독자의 경험을 떠올리게 하는 질문",
			"독자가 화자였다면 어떤 기분일지 묻는 질문",
			"시 전체의 주제나 말하지 않은 의미를 추론하게 하는 질문",
			"창작 배경이나 시대적 맥락에 대한 질문",
		},
	},
	{
		name:    NameInterpretive,
		persona: "해석 튜터",
		axis:    competency.Interpretive,
		scope: []string{
			"시에 명시되지 않은 상황이나 의미의 추론",
			"상징과 행간이 가리키는 대상",
			"여러 단서를 종합해 시 전체의 의미를 구성하는 질문",
		},
		forbidden: []string{
			"화자나 인물의 감정에 공감하거나 독자의 경험을 떠올리게 하는 질문",
			"독자가 화자였다면 어떤 기분일지 묻는 질문",
			"운율, 반복, 비유 등 표현 기법 자체를 찾거나 분류하게 하는 질문",
			"시어나 문장 구조가 주는 감각적 효과만을 묻는 질문",
		},
	},
}

// NewTutors creates the empathy, aesthetic, and interpretive tutors in
// that order.
func NewTutors(client llm.Client, table *competency.Table) []*Tutor {
	tutors := make([]*Tutor, 0, len(tutorSpecs))
	for _, spec := range tutorSpecs {
		tutors = append(tutors, &Tutor{
			base:      base{name: spec.name, persona: spec.persona, client: client},
			axis:      spec.axis,
			table:     table,
			scope:     spec.scope,
			forbidden: spec.forbidden,
		})
	}
	return tutors
}

// Axis returns the axis the tutor owns.
func (t *Tutor) Axis() competency.Axis { return t.axis }

type tutorData struct {
	Persona   string
	Reader    string
	Title     string
	Content   string
	Gap       competency.Gap
	Scope     []string
	Forbidden []string
}

// SystemPrompt renders the shared preamble plus this tutor's axis section.
func (t *Tutor) SystemPrompt(state *domain.SessionState) (string, error) {
	return render(tutorPrompt, tutorData{
		Persona:   t.persona,
		Reader:    state.ReaderName(),
		Title:     state.Poem.Title,
		Content:   state.Poem.Content,
		Gap:       t.table.GapFor(t.axis, state.Level),
		Scope:     t.scope,
		Forbidden: t.forbidden,
	})
}

// Respond implements Agent.
func (t *Tutor) Respond(ctx context.Context, state *domain.SessionState, input string) string {
	system, err := t.SystemPrompt(state)
	if err != nil {
		return t.soft("", err)
	}
	msgs := conversation(system, state.History, orPlaceholder(input, TutorOpening))
	return t.soft(t.complete(ctx, msgs, ChatTemperature))
}
