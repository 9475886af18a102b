package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/go-chi/chi/v5"
)

// levelPayload decodes competency levels. Missing axes default to the
// minimum level; out-of-range values are clamped.
type levelPayload struct {
	EmpState *int `json:"emp_state"`
	AseState *int `json:"ase_state"`
	IntState *int `json:"int_state"`
}

func (p levelPayload) level() domain.UserLevel {
	pick := func(v *int) int {
		if v == nil {
			return domain.MinLevel
		}
		return *v
	}
	return domain.UserLevel{
		EmpState: pick(p.EmpState),
		AseState: pick(p.AseState),
		IntState: pick(p.IntState),
	}.Clamped()
}

// poemPayload decodes a poem whose every field must be present.
type poemPayload struct {
	ID      *int    `json:"id"`
	Title   *string `json:"title"`
	Author  *string `json:"author"`
	Content *string `json:"content"`
}

func (p *poemPayload) poem(field string) (domain.Poem, error) {
	if p == nil {
		return domain.Poem{}, invalid(field, "is required")
	}
	switch {
	case p.ID == nil:
		return domain.Poem{}, invalid(field+".id", "is required")
	case p.Title == nil:
		return domain.Poem{}, invalid(field+".title", "is required")
	case p.Author == nil:
		return domain.Poem{}, invalid(field+".author", "is required")
	case p.Content == nil:
		return domain.Poem{}, invalid(field+".content", "is required")
	}
	return domain.Poem{ID: *p.ID, Title: *p.Title, Author: *p.Author, Content: *p.Content}, nil
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toHistory(field string, in []messagePayload) ([]domain.Message, error) {
	out := make([]domain.Message, 0, len(in))
	for i, m := range in {
		role, err := domain.ParseRole(m.Role)
		if err != nil {
			return nil, invalid(fmt.Sprintf("%s[%d].role", field, i), err.Error())
		}
		out = append(out, domain.Message{Role: role, Content: m.Content})
	}
	return out, nil
}

type chatRequest struct {
	UserName          string           `json:"user_name"`
	SelectedPoem      *poemPayload     `json:"selected_poem"`
	ChatHistory       []messagePayload `json:"chat_history"`
	SharedChatHistory []messagePayload `json:"shared_chat_history"`
	UserInput         string           `json:"user_input"`
	UserLevel         *levelPayload    `json:"user_level"`
}

// session rebuilds the SessionState from the request, taking History from
// the named history field.
func (req *chatRequest) session(historyField string) (*domain.SessionState, error) {
	poem, err := req.SelectedPoem.poem("selected_poem")
	if err != nil {
		return nil, err
	}

	raw := req.ChatHistory
	if historyField == "shared_chat_history" {
		raw = req.SharedChatHistory
	}
	history, err := toHistory(historyField, raw)
	if err != nil {
		return nil, err
	}

	level := domain.DefaultUserLevel()
	if req.UserLevel != nil {
		level = req.UserLevel.level()
	}

	return &domain.SessionState{
		UserName: req.UserName,
		Poem:     poem,
		Level:    level,
		History:  history,
	}, nil
}

func (h *Handler) decodeSession(w http.ResponseWriter, r *http.Request, historyField string) (*domain.SessionState, string, error) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, "", err
	}
	state, err := req.session(historyField)
	if err != nil {
		return nil, "", err
	}
	return state, req.UserInput, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// ChatTeacher runs one teacher turn.
func (h *Handler) ChatTeacher(w http.ResponseWriter, r *http.Request) {
	state, input, err := h.decodeSession(w, r, "chat_history")
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("Teacher turn", "user_name", state.ReaderName(), "poem_id", state.Poem.ID, "history", len(state.History))
	JSON(w, http.StatusOK, messageResponse{Message: h.tutor.Teacher(r.Context(), state, input)})
}

// ChatAgent runs one turn of the agent named in the path against its own
// chat_history.
func (h *Handler) ChatAgent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "agent_type")
	a, err := h.tutor.Agent(name)
	if err != nil {
		writeError(w, err)
		return
	}

	state, input, err := h.decodeSession(w, r, "chat_history")
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("Agent turn", "agent", name, "user_name", state.ReaderName(), "poem_id", state.Poem.ID, "history", len(state.History))
	JSON(w, http.StatusOK, messageResponse{Message: a.Respond(r.Context(), state, input)})
}

// Critique has both critics write their essays on the posted poem.
func (h *Handler) Critique(w http.ResponseWriter, r *http.Request) {
	var req poemPayload
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	poem, err := req.poem("poem")
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("Critique requested", "poem_id", poem.ID)
	JSON(w, http.StatusOK, h.tutor.Critique(r.Context(), poem))
}

// ChatMulti sends one reader turn to all three tutors over the shared
// history.
func (h *Handler) ChatMulti(w http.ResponseWriter, r *http.Request) {
	state, input, err := h.decodeSession(w, r, "shared_chat_history")
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("Tutor turn", "user_name", state.ReaderName(), "poem_id", state.Poem.ID, "history", len(state.History))
	JSON(w, http.StatusOK, h.tutor.Multi(r.Context(), state, input))
}
