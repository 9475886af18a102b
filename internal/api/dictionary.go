package api

import (
	"net/http"
	"strings"

	"github.com/ashureev/scaffolder/internal/dictionary"
)

type dictionaryRequest struct {
	Word string `json:"word"`
}

type dictionaryResponse struct {
	Word     string               `json:"word"`
	Meanings []dictionary.Meaning `json:"meanings"`
}

// SearchWord looks a word up. Upstream failures and empty results both
// answer with the "no results" placeholder meaning.
func (h *Handler) SearchWord(w http.ResponseWriter, r *http.Request) {
	var req dictionaryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	word := strings.TrimSpace(req.Word)
	if word == "" {
		Error(w, http.StatusBadRequest, "검색할 단어가 없습니다.")
		return
	}

	meanings := h.dict.Search(r.Context(), word)
	if len(meanings) == 0 {
		meanings = dictionary.NoResults()
	}
	JSON(w, http.StatusOK, dictionaryResponse{Word: word, Meanings: meanings})
}
