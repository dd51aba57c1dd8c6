package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/kyiku/wordsearch-back/internal/response"
)

// PuzzleHandler generates one-off puzzles without storing them.
type PuzzleHandler struct {
	generate    GenerateFunc
	maxAttempts int
}

// NewPuzzleHandler creates a new PuzzleHandler.
func NewPuzzleHandler(generate GenerateFunc, maxAttempts int) *PuzzleHandler {
	return &PuzzleHandler{
		generate:    generate,
		maxAttempts: maxAttempts,
	}
}

// GenerateRequest is the body of POST /api/puzzles.
type GenerateRequest struct {
	Words []string `json:"words"`
}

// Generate builds a puzzle from the posted words.
func (h *PuzzleHandler) Generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidArgument, "invalid request body")
	}

	p, err := generateFrom(h.generate, req.Words, h.maxAttempts)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"puzzle": p.Record(),
	})
}

// generateFrom normalizes words and runs the generator.
func generateFrom(generate GenerateFunc, words []string, maxAttempts int) (*puzzle.Puzzle, error) {
	normalized, problem := normalizeWords(words)
	if problem != "" {
		return nil, fmt.Errorf("%w: %s", puzzle.ErrInvalidArgument, problem)
	}
	return generate(normalized, maxAttempts)
}
