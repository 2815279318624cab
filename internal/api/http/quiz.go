package http

import (
	"encoding/json"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
	"github.com/Santhosh-Billionaire/quizplatform/internal/quiz"
)

type sessionPayload struct {
	Quiz      quiz.QuizSession `json:"quiz"`
	Questions []quiz.Question  `json:"questions"`
}

// CreateQuizHandler starts a quiz session from the caller's topic and
// difficulty selection.
func CreateQuizHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			UserID       string   `json:"userId"`
			BookID       string   `json:"bookId"`
			Topics       []string `json:"topics"`
			Difficulty   string   `json:"difficulty"`
			TimeLimit    int      `json:"timeLimit"`
			NumQuestions int      `json:"numQuestions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, nethttp.StatusBadRequest, map[string]string{
				"error": "bad json", "code": "MALFORMED_PAYLOAD",
			})
			return
		}
		session, questions, err := svc.CreateSession(r.Context(), quiz.CreateSessionInput{
			UserID:       req.UserID,
			BookID:       req.BookID,
			Topics:       req.Topics,
			Difficulty:   req.Difficulty,
			TimeLimit:    req.TimeLimit,
			NumQuestions: req.NumQuestions,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, sessionPayload{Quiz: session, Questions: questions})
	}
}

// GetQuizHandler re-serves a stored session with its questions in the
// original selection order.
func GetQuizHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		session, questions, err := svc.GetSession(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, sessionPayload{Quiz: session, Questions: questions})
	}
}

// SubmitResponseHandler grades and records one answer.
func SubmitResponseHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req quiz.SubmitInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, nethttp.StatusBadRequest, map[string]string{
				"error": "invalid or missing selectedIndex (must be a number)",
				"code":  "VALIDATION_ERROR",
			})
			return
		}
		response, grade, err := svc.SubmitResponse(r.Context(), req)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, map[string]interface{}{
			"response":      response,
			"correct":       grade.Correct,
			"correctAnswer": grade.CorrectIndex,
			"correctText":   grade.CorrectText,
		})
	}
}
