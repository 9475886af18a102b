package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ListPoems returns the whole catalog.
func (h *Handler) ListPoems(w http.ResponseWriter, _ *http.Request) {
	poems := h.poems.List()
	if len(poems) == 0 {
		Error(w, http.StatusNotFound, "시 데이터를 찾을 수 없습니다.")
		return
	}
	JSON(w, http.StatusOK, poems)
}

// GetPoem returns one poem by id.
func (h *Handler) GetPoem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, invalid("id", "must be an integer"))
		return
	}

	poem, err := h.poems.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, poem)
}
