package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Santhosh-Billionaire/quizplatform/internal/db"
	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
	"github.com/Santhosh-Billionaire/quizplatform/internal/quiz"
)

type noGenerate struct{ t *testing.T }

func (g noGenerate) GenerateQuestions(context.Context, string, int) (string, error) {
	g.t.Error("generation invoked on a read-only route")
	return "[]", nil
}

type nopBlob struct{}

func (nopBlob) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return key, nil
}
func (nopBlob) PublicURL(key string) string { return key }

type nopExtractor struct{}

func (nopExtractor) Extract(_ context.Context, data []byte, _ string) (string, error) {
	return string(data), nil
}

// seedBookQuestions loads a book with one easy and one hard question and
// returns the service, store, book id, and the easy question's topic id.
func seedBookQuestions(t *testing.T) (*quiz.Service, *quiz.SQLStore, string, string) {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		"file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	store := quiz.NewSQLStore(dbh)
	ctx := context.Background()

	book, err := store.CreateBook(ctx, quiz.Book{ID: uuid.NewString(), Title: "Seeded"})
	if err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	topic, err := store.InsertTopic(ctx, quiz.Topic{ID: uuid.NewString(), BookID: book.ID, Name: "Algebra"})
	if err != nil {
		t.Fatalf("InsertTopic: %v", err)
	}
	for _, q := range []quiz.Question{
		{ID: uuid.NewString(), BookID: book.ID, TopicID: topic.ID, Question: "Easy one",
			Options: quiz.Options{"A": "a", "B": "b", "C": "c", "D": "d"}, Answer: "A", Difficulty: "easy"},
		{ID: uuid.NewString(), BookID: book.ID, Question: "Hard one",
			Options: quiz.Options{"A": "a", "B": "b", "C": "c", "D": "d"}, Answer: "B", Difficulty: "hard"},
	} {
		if _, err := store.InsertQuestion(ctx, q); err != nil {
			t.Fatalf("InsertQuestion: %v", err)
		}
	}

	svc := quiz.NewService(store, nopBlob{}, nopExtractor{}, noGenerate{t}, logger.NewNop())
	return svc, store, book.ID, topic.ID
}

func TestBookQuestionsRouteIsReadOnly(t *testing.T) {
	svc, store, bookID, topicID := seedBookQuestions(t)

	r := chi.NewRouter()
	r.Post("/api/books/{bookID}/questions", BookQuestionsHandler(svc, logger.NewNop()))

	body := strings.NewReader(`{"topics":["` + topicID + `"],"difficulty":"easy"}`)
	req := httptest.NewRequest("POST", "/api/books/"+bookID+"/questions", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got []quiz.Question
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Difficulty != "easy" {
		t.Errorf("got %+v, want the single easy question", got)
	}

	// The route filters; it must not have generated or inserted anything.
	all, err := store.ListQuestionsByBook(context.Background(), bookID)
	if err != nil {
		t.Fatalf("ListQuestionsByBook: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("question count changed to %d, want 2", len(all))
	}
}

func TestBookQuestionsRouteEmptyBodyReturnsAll(t *testing.T) {
	svc, _, bookID, _ := seedBookQuestions(t)

	r := chi.NewRouter()
	r.Post("/api/books/{bookID}/questions", BookQuestionsHandler(svc, logger.NewNop()))

	req := httptest.NewRequest("POST", "/api/books/"+bookID+"/questions", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []quiz.Question
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d questions, want 2", len(got))
	}
}

func TestBookQuestionsRouteUnknownBook(t *testing.T) {
	svc, _, _, _ := seedBookQuestions(t)

	r := chi.NewRouter()
	r.Post("/api/books/{bookID}/questions", BookQuestionsHandler(svc, logger.NewNop()))

	req := httptest.NewRequest("POST", "/api/books/missing/questions", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["code"] != "BOOK_NOT_FOUND" {
		t.Errorf("code = %q", body["code"])
	}
}

func TestReportCardRequiresUserAndBook(t *testing.T) {
	svc, _, bookID, _ := seedBookQuestions(t)
	h := ReportCardHandler(svc, nil, logger.NewNop())

	for _, target := range []string{
		"/api/results/report",
		"/api/results/report?userId=u1",
		"/api/results/report?bookId=" + bookID,
	} {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest("GET", target, nil))
		if rec.Code != 400 {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
			continue
		}
		if body := decodeBody(t, rec); body["code"] != "MISSING_PARAMS" {
			t.Errorf("%s: code = %q", target, body["code"])
		}
	}
}

func TestReportCardWithoutRenderer(t *testing.T) {
	svc, _, bookID, _ := seedBookQuestions(t)
	h := ReportCardHandler(svc, nil, logger.NewNop())

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/api/results/report?userId=u1&bookId="+bookID, nil))
	if rec.Code != 404 {
		t.Errorf("status = %d, want 404 when no font is configured", rec.Code)
	}
}
