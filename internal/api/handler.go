// Package api provides HTTP handlers for the tutoring API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ashureev/scaffolder/internal/agent"
	"github.com/ashureev/scaffolder/internal/catalog"
	"github.com/ashureev/scaffolder/internal/dictionary"
	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/ashureev/scaffolder/internal/store"
	"github.com/go-chi/chi/v5"
)

// maxRequestBodySize caps JSON request bodies (1MB).
const maxRequestBodySize = 1 << 20

// Poems is the read side of the poem catalog.
type Poems interface {
	List() []domain.Poem
	Get(id int) (domain.Poem, error)
	Len() int
}

// Tutoring dispatches reader turns to the personas.
type Tutoring interface {
	Agent(name string) (agent.Agent, error)
	Teacher(ctx context.Context, state *domain.SessionState, input string) string
	Critique(ctx context.Context, poem domain.Poem) agent.Critique
	Multi(ctx context.Context, state *domain.SessionState, input string) agent.TutorReplies
}

// Dictionary looks words up.
type Dictionary interface {
	Search(ctx context.Context, word string) []dictionary.Meaning
}

// Handler serves every /api route.
type Handler struct {
	repo  store.Repository
	poems Poems
	tutor Tutoring
	dict  Dictionary
}

// NewHandler creates a new Handler with its dependencies.
func NewHandler(repo store.Repository, poems Poems, tutor Tutoring, dict Dictionary) *Handler {
	return &Handler{
		repo:  repo,
		poems: poems,
		tutor: tutor,
		dict:  dict,
	}
}

// RegisterRoutes registers the API routes. The fixed chat routes win over
// the {agent_type} pattern.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/poems", h.ListPoems)
		r.Get("/poems/{id}", h.GetPoem)

		r.Post("/profile/save", h.SaveProfile)
		r.Get("/profile/{user_name}", h.GetProfile)

		r.Post("/dictionary", h.SearchWord)

		r.Route("/chat", func(r chi.Router) {
			r.Post("/teacher", h.ChatTeacher)
			r.Post("/critique", h.Critique)
			r.Post("/multi", h.ChatMulti)
			r.Post("/{agent_type}", h.ChatAgent)
		})
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// writeError maps err onto a status code.
func writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		Error(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, catalog.ErrPoemNotFound):
		Error(w, http.StatusNotFound, "해당 시를 찾을 수 없습니다.")
	case errors.Is(err, agent.ErrUnknownAgent):
		Error(w, http.StatusNotFound, "에이전트를 찾을 수 없습니다.")
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeJSON reads a single JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return invalid("", "request body is empty")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return invalid("", fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
		}
		return invalid("", "invalid JSON: "+err.Error())
	}
	return nil
}
