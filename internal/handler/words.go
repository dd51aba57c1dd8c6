package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kyiku/wordsearch-back/internal/response"
)

// WordsHandler suggests words for new puzzles.
type WordsHandler struct {
	suggester WordSuggester
}

// NewWordsHandler creates a new WordsHandler.
func NewWordsHandler(suggester WordSuggester) *WordsHandler {
	return &WordsHandler{
		suggester: suggester,
	}
}

// SuggestRequest is the body of POST /api/words/suggest.
type SuggestRequest struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// Suggest returns themed words.
func (h *WordsHandler) Suggest(c echo.Context) error {
	var req SuggestRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidArgument, "invalid request body")
	}
	req.Theme = strings.TrimSpace(req.Theme)
	if req.Theme == "" || len(req.Theme) > 100 {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidArgument, "theme is required")
	}

	words, err := h.suggester.SuggestWords(c.Request().Context(), req.Theme, req.Count)
	if err != nil {
		log.Error().Err(err).Str("theme", req.Theme).Msg("word suggestion failed")
		return response.Error(c, http.StatusBadGateway, "could not get suggestions, please try again")
	}

	return response.Success(c, map[string]interface{}{
		"words": words,
	})
}
