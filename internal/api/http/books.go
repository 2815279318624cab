package http

import (
	"encoding/json"
	"io"
	"strings"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
	"github.com/Santhosh-Billionaire/quizplatform/internal/quiz"
)

// Handlers only — routes remain in main.go

// maxUploadBytes bounds multipart uploads (32 MiB).
const maxUploadBytes = 32 << 20

// UploadBookHandler ingests one uploaded file: multipart field "file",
// optional "title" and "userId" fields.
func UploadBookHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		r.Body = nethttp.MaxBytesReader(w, r.Body, maxUploadBytes)
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, nethttp.StatusBadRequest, map[string]string{
				"error": "no file uploaded", "code": "NO_FILE",
			})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			writeJSON(w, nethttp.StatusBadRequest, map[string]string{
				"error": "could not read upload", "code": "NO_FILE",
			})
			return
		}

		contentType := hdr.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		res, err := svc.UploadBook(r.Context(), quiz.UploadInput{
			FileName:    hdr.Filename,
			ContentType: contentType,
			Data:        data,
			Title:       r.FormValue("title"),
			UserID:      r.FormValue("userId"),
		})
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, res)
	}
}

func GetBookHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		book, err := svc.GetBook(r.Context(), chi.URLParam(r, "bookID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, book)
	}
}

func ListTopicsHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		topics, err := svc.ListTopics(r.Context(), chi.URLParam(r, "bookID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		if topics == nil {
			topics = []quiz.Topic{}
		}
		writeJSON(w, nethttp.StatusOK, topics)
	}
}

// BookQuestionsHandler is a pure filtered read: the body's topic ids and
// difficulty narrow the book's question list. It never generates or
// inserts anything.
func BookQuestionsHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Topics     []string `json:"topics"`
			Difficulty string   `json:"difficulty"`
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		questions, err := svc.BookQuestions(r.Context(), chi.URLParam(r, "bookID"), req.Topics, req.Difficulty)
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

// GenerateQuestionsHandler is the body-addressed variant: the book id
// comes from the JSON payload instead of the path.
func GenerateQuestionsHandler(svc *quiz.Service, log *logger.Logger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			BookID       string `json:"bookId"`
			NumQuestions int    `json:"numQuestions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.BookID) == "" {
			writeJSON(w, nethttp.StatusBadRequest, map[string]string{
				"error": "bookId is required", "code": "MISSING_PARAMS",
			})
			return
		}
		res, err := svc.GenerateQuestions(r.Context(), req.BookID, req.NumQuestions)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, res)
	}
}
