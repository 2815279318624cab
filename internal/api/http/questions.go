package http

import (
	"strings"

	nethttp "net/http"

	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
	"github.com/Santhosh-Billionaire/quizplatform/internal/quiz"
)

// ListQuestionsHandler serves GET /api/questions?bookId=...&topics=a,b&difficulty=easy.
func ListQuestionsHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		q := r.URL.Query()
		bookID := strings.TrimSpace(q.Get("bookId"))
		if bookID == "" {
			writeJSON(w, nethttp.StatusBadRequest, map[string]string{
				"error": "bookId query parameter is required", "code": "MISSING_PARAMS",
			})
			return
		}
		questions, err := svc.BookQuestions(r.Context(), bookID, splitCSV(q.Get("topics")), q.Get("difficulty"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		if questions == nil {
			questions = []quiz.Question{}
		}
		writeJSON(w, nethttp.StatusOK, questions)
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
