package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hourei/hourei-backend/internal/api/respond"
	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/quiz"
)

// quizBuildAttempts bounds regeneration when a generated question
// violates the four-choice contract.
const quizBuildAttempts = 3

// QuizHandler serves generated questions from the embedded bank.
type QuizHandler struct {
	generator *quiz.Generator
	rand      func() float64
}

func NewQuizHandler(generator *quiz.Generator) *QuizHandler {
	return &QuizHandler{generator: generator}
}

// SetRand overrides the random source; used by tests.
func (h *QuizHandler) SetRand(randFn func() float64) { h.rand = randFn }

// CreateQuestion POST /api/quiz/questions
func (h *QuizHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category   string `json:"category"`
		Difficulty string `json:"difficulty"`
		Mode       string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	opts := quiz.Options{
		Category:   req.Category,
		Difficulty: model.QuizDifficulty(req.Difficulty),
		Mode:       quiz.Mode(req.Mode),
		Rand:       h.rand,
	}

	var lastErr error
	for attempt := 0; attempt < quizBuildAttempts; attempt++ {
		question, err := h.generator.Generate(opts)
		if err != nil {
			switch {
			case errors.Is(err, model.ErrNoBankEntries):
				respond.WriteNotFound(w, "no quiz entries match the requested category")
			case errors.Is(err, model.ErrNoManualPreset):
				respond.WriteBadRequest(w, "no manual preset exists for the selected entry")
			default:
				respond.WriteInternalError(w, err.Error())
			}
			return
		}
		if lastErr = quiz.EnsureValid(question); lastErr == nil {
			respond.WriteJSON(w, http.StatusOK, question)
			return
		}
	}
	respond.WriteInternalError(w, lastErr.Error())
}
