package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/ashureev/scaffolder/internal/store"
	"github.com/go-chi/chi/v5"
)

type saveProfileRequest struct {
	UserName string `json:"user_name"`
	levelPayload
}

type saveProfileResponse struct {
	Status string `json:"status"`
	User   string `json:"user"`
}

type profileResponse struct {
	UserName string           `json:"user_name"`
	States   domain.UserLevel `json:"states"`
	IsNew    bool             `json:"is_new,omitempty"`
}

// SaveProfile upserts a reader's competency levels.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req saveProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	name := strings.TrimSpace(req.UserName)
	if name == "" {
		writeError(w, invalid("user_name", "is required"))
		return
	}

	profile := &domain.UserProfile{UserName: name, Level: req.level()}
	if err := h.repo.SaveProfile(r.Context(), profile); err != nil {
		if store.IsBusy(err) {
			slog.Warn("Profile store busy", "user_name", name, "error", err)
		} else {
			slog.Error("Failed to save profile", "user_name", name, "error", err)
		}
		writeError(w, err)
		return
	}

	slog.Info("Profile saved", "user_name", name, "levels", profile.Level)
	JSON(w, http.StatusOK, saveProfileResponse{Status: "success", User: name})
}

// GetProfile returns stored levels, or the defaults flagged as new. It
// never creates a profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "user_name")

	profile, err := h.repo.GetProfile(r.Context(), name)
	if err != nil {
		slog.Error("Failed to load profile", "user_name", name, "error", err)
		writeError(w, err)
		return
	}
	if profile == nil {
		JSON(w, http.StatusOK, profileResponse{UserName: name, States: domain.DefaultUserLevel(), IsNew: true})
		return
	}
	JSON(w, http.StatusOK, profileResponse{UserName: name, States: profile.Level})
}
