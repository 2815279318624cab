package http

import (
	"image/png"
	"strings"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
	"github.com/Santhosh-Billionaire/quizplatform/internal/quiz"
	"github.com/Santhosh-Billionaire/quizplatform/internal/report"
)

// QuizResultsHandler serves a session's responses, questions, and the
// computed summary.
func QuizResultsHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		session, results, err := svc.SessionResults(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]interface{}{
			"quiz":      session,
			"responses": results.Responses,
			"questions": results.Questions,
			"summary":   results.Summary,
		})
	}
}

// UserResultsHandler serves GET /api/results?userId=...&bookId=...
func UserResultsHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		q := r.URL.Query()
		results, err := svc.UserResults(r.Context(), q.Get("userId"), q.Get("bookId"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, results)
	}
}

// ReportCardHandler renders a user's results for one book as a PNG card,
// keyed on userId and bookId like the JSON results route. Returns 404 when
// the server runs without a configured font.
func ReportCardHandler(svc *quiz.Service, rend *report.Renderer, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		q := r.URL.Query()
		userID := strings.TrimSpace(q.Get("userId"))
		bookID := strings.TrimSpace(q.Get("bookId"))
		if userID == "" || bookID == "" {
			writeJSON(w, nethttp.StatusBadRequest, map[string]string{
				"error": "missing required parameters: userId and bookId", "code": "MISSING_PARAMS",
			})
			return
		}
		if rend == nil {
			nethttp.Error(w, "report rendering not configured", nethttp.StatusNotFound)
			return
		}
		book, err := svc.GetBook(r.Context(), bookID)
		if err != nil {
			writeError(w, log, err)
			return
		}
		results, err := svc.UserResults(r.Context(), userID, bookID)
		if err != nil {
			writeError(w, log, err)
			return
		}
		img, err := rend.Render(report.Card{
			Title:     book.Title,
			UserID:    userID,
			Summary:   results.Summary,
			Questions: results.Questions,
			Responses: results.Responses,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, img); err != nil {
			log.Error("report encode failed", "user_id", userID, "book_id", bookID, "error", err)
		}
	}
}
