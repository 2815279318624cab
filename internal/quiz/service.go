package quiz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
)

// Generator is the generative text service: prompt in, raw payload text
// out. The normalizer owns making sense of that text.
type Generator interface {
	GenerateQuestions(ctx context.Context, bookText string, n int) (string, error)
}

// TextExtractor pulls plain text from an uploaded file.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Blob is the slice of the blob store the service needs.
type Blob interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PublicURL(key string) string
}

// EventLog records domain events, best-effort: append failures are logged
// and never fail the request.
type EventLog interface {
	Append(ctx context.Context, typ, key string, data interface{}) error
}

// Service wires the ingestion pipeline and the quiz session engine
// together. All collaborators are injected once at startup; there is no
// process-wide shared client state.
type Service struct {
	store        Store
	blob         Blob
	extractor    TextExtractor
	gen          Generator
	events       EventLog
	log          *logger.Logger
	defaultCount int
	rng          *rand.Rand
	now          func() time.Time
}

type Option func(*Service)

// WithDefaultCount sets how many questions one generation asks for.
func WithDefaultCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultCount = n
		}
	}
}

// WithRand fixes the shuffle source, for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithEvents turns on domain event recording.
func WithEvents(ev EventLog) Option {
	return func(s *Service) { s.events = ev }
}

// WithClock fixes the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, blob Blob, extractor TextExtractor, gen Generator, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:        store,
		blob:         blob,
		extractor:    extractor,
		gen:          gen,
		log:          log.With("service", "quiz.Service"),
		defaultCount: DefaultSessionSize,
		now:          time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ---- Ingestion pipeline ----

type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
	Title       string
	UserID      string
}

// IngestResult reports what one ingestion produced. Dropped carries the
// structured per-record rejections instead of burying them in logs.
type IngestResult struct {
	Book      Book        `json:"book"`
	Questions []Question  `json:"questions"`
	Dropped   []Rejection `json:"dropped,omitempty"`
}

// UploadBook runs the full pipeline: store the file, extract its text,
// generate questions, normalize, resolve topics, persist. Stage failures
// abort with the stage's error code; per-record problems are absorbed and
// counted.
func (s *Service) UploadBook(ctx context.Context, in UploadInput) (IngestResult, error) {
	if len(in.Data) == 0 {
		return IngestResult{}, apierr.Validation("NO_FILE", errors.New("no file uploaded"))
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = in.FileName
	}

	key := fmt.Sprintf("books/%d_%s", s.now().UnixMilli(), path.Base(in.FileName))
	if _, err := s.blob.Put(ctx, key, bytes.NewReader(in.Data), in.ContentType); err != nil {
		return IngestResult{}, apierr.Upstream("STORAGE_ERROR", fmt.Errorf("storage failed: %w", err))
	}
	fileURL := s.blob.PublicURL(key)

	rawText, err := s.extractor.Extract(ctx, in.Data, in.ContentType)
	if err != nil {
		return IngestResult{}, apierr.Upstream("EXTRACTION_ERROR", fmt.Errorf("text extraction failed: %w", err))
	}

	batch, err := s.generateBatch(ctx, rawText, s.defaultCount)
	if err != nil {
		return IngestResult{}, err
	}

	book, err := s.store.CreateBook(ctx, Book{
		ID:        uuid.NewString(),
		Title:     title,
		FileURL:   fileURL,
		RawText:   rawText,
		UserID:    strings.TrimSpace(in.UserID),
		CreatedAt: s.now().Unix(),
	})
	if err != nil {
		return IngestResult{}, fmt.Errorf("book save failed: %w", err)
	}

	questions, dropped, err := s.persistDrafts(ctx, book.ID, batch)
	if err != nil {
		return IngestResult{}, err
	}

	s.appendEvent(ctx, "BookIngested", book.ID, map[string]interface{}{
		"title":     book.Title,
		"questions": len(questions),
		"dropped":   len(dropped),
	})
	s.log.Info("book ingested",
		"book_id", book.ID, "questions", len(questions), "dropped", len(dropped))

	return IngestResult{Book: book, Questions: questions, Dropped: dropped}, nil
}

// GenerateQuestions re-runs generation against a stored book's text.
func (s *Service) GenerateQuestions(ctx context.Context, bookID string, n int) (IngestResult, error) {
	book, err := s.getBook(ctx, bookID)
	if err != nil {
		return IngestResult{}, err
	}
	if n <= 0 {
		n = s.defaultCount
	}
	batch, err := s.generateBatch(ctx, book.RawText, n)
	if err != nil {
		return IngestResult{}, err
	}
	questions, dropped, err := s.persistDrafts(ctx, book.ID, batch)
	if err != nil {
		return IngestResult{}, err
	}
	return IngestResult{Book: book, Questions: questions, Dropped: dropped}, nil
}

func (s *Service) generateBatch(ctx context.Context, bookText string, n int) (Batch, error) {
	raw, err := s.gen.GenerateQuestions(ctx, bookText, n)
	if err != nil {
		return Batch{}, fmt.Errorf("AI generation failed: %w", err)
	}
	batch, err := Normalize(raw)
	if err != nil {
		return Batch{}, err
	}
	if len(batch.Drafts) == 0 {
		return Batch{}, apierr.Upstream("EMPTY_BATCH",
			fmt.Errorf("AI generation failed: no usable questions in payload (%d dropped)", batch.Dropped()))
	}
	return batch, nil
}

// persistDrafts is the question store adapter: resolve each draft's topic
// from the per-batch map (falling back to the sentinel topic on demand)
// and persist row by row. Drafts that cannot obtain any topic id are
// dropped and counted, never fatal to the batch.
func (s *Service) persistDrafts(ctx context.Context, bookID string, batch Batch) ([]Question, []Rejection, error) {
	resolver := NewResolver(s.store, s.log)
	dropped := append([]Rejection(nil), batch.Rejections...)

	// Resolve each distinct topic name once, in enumeration order.
	topicIDs := map[string]string{}
	for _, d := range batch.Drafts {
		if _, seen := topicIDs[d.Topic]; seen {
			continue
		}
		id, err := resolver.Resolve(ctx, bookID, d.Topic)
		if err != nil {
			// Downgrade: the draft falls back to the sentinel topic below.
			s.log.Warn("topic resolution failed", "book_id", bookID, "topic", d.Topic, "error", err)
			continue
		}
		topicIDs[d.Topic] = id
	}

	var saved []Question
	for i, d := range batch.Drafts {
		topicID := topicIDs[d.Topic]
		if topicID == "" {
			id, err := resolver.Resolve(ctx, bookID, SentinelTopic)
			if err != nil {
				dropped = append(dropped, Rejection{Index: i, Reason: "no topic available"})
				continue
			}
			topicID = id
			topicIDs[SentinelTopic] = id
		}
		q, err := s.store.InsertQuestion(ctx, Question{
			ID:         uuid.NewString(),
			BookID:     bookID,
			TopicID:    topicID,
			Question:   d.Question,
			Options:    d.Options,
			Answer:     d.Answer,
			Difficulty: d.Difficulty,
		})
		if err != nil {
			s.log.Warn("question insert failed", "book_id", bookID, "error", err)
			dropped = append(dropped, Rejection{Index: i, Reason: "insert failed"})
			continue
		}
		saved = append(saved, q)
	}

	if len(saved) == 0 {
		return nil, dropped, apierr.Upstream("EMPTY_BATCH",
			errors.New("no questions could be processed"))
	}
	return saved, dropped, nil
}

// ---- Reads ----

func (s *Service) GetBook(ctx context.Context, bookID string) (Book, error) {
	return s.getBook(ctx, bookID)
}

func (s *Service) getBook(ctx context.Context, bookID string) (Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Book{}, apierr.NotFound("BOOK_NOT_FOUND", err)
		}
		return Book{}, err
	}
	return book, nil
}

// BookQuestions returns a book's questions, optionally filtered by topic
// ids and difficulty.
func (s *Service) BookQuestions(ctx context.Context, bookID string, topicIDs []string, difficulty string) ([]Question, error) {
	if _, err := s.getBook(ctx, bookID); err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestionsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return FilterQuestions(questions, topicIDs, difficulty), nil
}

func (s *Service) ListTopics(ctx context.Context, bookID string) ([]Topic, error) {
	if _, err := s.getBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.store.ListTopics(ctx, bookID)
}

// ---- Quiz sessions ----

type CreateSessionInput struct {
	UserID       string
	BookID       string
	Topics       []string
	Difficulty   string
	TimeLimit    int
	NumQuestions int
}

// CreateSession materializes an immutable quiz session: the selected,
// ordered question id list is persisted so re-fetching the session always
// reproduces the same questions.
func (s *Service) CreateSession(ctx context.Context, in CreateSessionInput) (QuizSession, []Question, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.BookID) == "" {
		return QuizSession{}, nil, apierr.Validation("MISSING_PARAMS",
			errors.New("userId and bookId are required"))
	}
	if _, err := s.getBook(ctx, in.BookID); err != nil {
		return QuizSession{}, nil, err
	}
	questions, err := s.store.ListQuestionsByBook(ctx, in.BookID)
	if err != nil {
		return QuizSession{}, nil, err
	}

	size := in.NumQuestions
	if size <= 0 {
		size = s.defaultCount
	}
	selected, err := SelectQuestions(questions, in.Topics, in.Difficulty, size, s.rng)
	if err != nil {
		return QuizSession{}, nil, err
	}

	ids := make([]string, len(selected))
	for i, q := range selected {
		ids[i] = q.ID
	}
	difficulty := strings.ToLower(strings.TrimSpace(in.Difficulty))
	if difficulty == "" {
		difficulty = DifficultyMixed
	}
	session, err := s.store.CreateSession(ctx, QuizSession{
		ID:           uuid.NewString(),
		UserID:       in.UserID,
		BookID:       in.BookID,
		Topics:       in.Topics,
		Difficulty:   difficulty,
		TimeLimit:    in.TimeLimit,
		NumQuestions: size,
		QuestionIDs:  ids,
		CreatedAt:    s.now().Unix(),
	})
	if err != nil {
		return QuizSession{}, nil, err
	}

	s.appendEvent(ctx, "QuizCreated", session.ID, map[string]interface{}{
		"book_id":   session.BookID,
		"user_id":   session.UserID,
		"questions": len(ids),
	})
	return session, selected, nil
}

// GetSession re-resolves a stored session to its exact ordered question
// list.
func (s *Service) GetSession(ctx context.Context, quizID string) (QuizSession, []Question, error) {
	session, err := s.store.GetSession(ctx, quizID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return QuizSession{}, nil, apierr.NotFound("QUIZ_NOT_FOUND", err)
		}
		return QuizSession{}, nil, err
	}
	questions, err := s.questionsInSessionOrder(ctx, session)
	if err != nil {
		return QuizSession{}, nil, err
	}
	return session, questions, nil
}

// questionsInSessionOrder restores the persisted selection order, which
// the IN query does not preserve.
func (s *Service) questionsInSessionOrder(ctx context.Context, session QuizSession) ([]Question, error) {
	fetched, err := s.store.GetQuestionsByIDs(ctx, session.QuestionIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Question, len(fetched))
	for _, q := range fetched {
		byID[q.ID] = q
	}
	ordered := make([]Question, 0, len(session.QuestionIDs))
	for _, id := range session.QuestionIDs {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// ---- Answer scoring ----

type SubmitInput struct {
	QuestionID    string   `json:"questionId"`
	QuizID        string   `json:"quizId"`
	UserID        string   `json:"userId"`
	SelectedIndex *float64 `json:"selectedIndex"`
	TimeTaken     *float64 `json:"timeTaken"`
}

// SubmitResponse validates and grades one submitted answer, then persists
// the response row — always, correct or not.
func (s *Service) SubmitResponse(ctx context.Context, in SubmitInput) (Response, GradeResult, error) {
	if _, err := uuid.Parse(in.QuestionID); err != nil {
		return Response{}, GradeResult{}, apierr.Validation("VALIDATION_ERROR",
			errors.New("invalid or missing questionId (must be a valid UUID)"))
	}
	if strings.TrimSpace(in.UserID) == "" {
		return Response{}, GradeResult{}, apierr.Validation("VALIDATION_ERROR",
			errors.New("invalid or missing userId (must be a non-empty string)"))
	}
	if in.SelectedIndex == nil || math.IsNaN(*in.SelectedIndex) || math.IsInf(*in.SelectedIndex, 0) {
		return Response{}, GradeResult{}, apierr.Validation("VALIDATION_ERROR",
			errors.New("invalid or missing selectedIndex (must be a number)"))
	}
	if _, err := uuid.Parse(in.QuizID); err != nil {
		return Response{}, GradeResult{}, apierr.Validation("VALIDATION_ERROR",
			errors.New("invalid or missing quizId (must be a valid UUID)"))
	}
	selected := int(*in.SelectedIndex)

	question, err := s.store.GetQuestion(ctx, in.QuestionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Response{}, GradeResult{}, apierr.NotFound("QUESTION_NOT_FOUND", err)
		}
		return Response{}, GradeResult{}, err
	}

	grade, err := Grade(question, selected)
	if err != nil {
		// Unparseable canonical answer: a stored-data bug, log it loudly.
		s.log.Error("invalid answer format on stored question",
			"question_id", question.ID, "answer", question.Answer, "error", err)
		return Response{}, GradeResult{}, err
	}

	var timeTaken float64
	if in.TimeTaken != nil && !math.IsNaN(*in.TimeTaken) && !math.IsInf(*in.TimeTaken, 0) {
		timeTaken = *in.TimeTaken
	}
	response, err := s.store.InsertResponse(ctx, Response{
		ID:            uuid.NewString(),
		QuestionID:    in.QuestionID,
		QuizID:        in.QuizID,
		UserID:        in.UserID,
		SelectedIndex: selected,
		Correct:       grade.Correct,
		TimeTaken:     timeTaken,
		CreatedAt:     s.now().Unix(),
	})
	if err != nil {
		return Response{}, GradeResult{}, err
	}

	s.appendEvent(ctx, "ResponseSubmitted", response.ID, map[string]interface{}{
		"quiz_id":     response.QuizID,
		"question_id": response.QuestionID,
		"correct":     response.Correct,
	})
	return response, grade, nil
}

// ---- Results ----

type Results struct {
	Responses []Response `json:"responses"`
	Questions []Question `json:"questions"`
	Summary   Summary    `json:"summary"`
}

// SessionResults aggregates everything stored for one quiz session.
func (s *Service) SessionResults(ctx context.Context, quizID string) (QuizSession, Results, error) {
	session, questions, err := s.GetSession(ctx, quizID)
	if err != nil {
		return QuizSession{}, Results{}, err
	}
	responses, err := s.store.ListResponsesBySession(ctx, quizID)
	if err != nil {
		return QuizSession{}, Results{}, err
	}
	return session, Results{
		Responses: responses,
		Questions: questions,
		Summary:   Summarize(responses),
	}, nil
}

// UserResults aggregates a user's responses across all of a book's
// questions.
func (s *Service) UserResults(ctx context.Context, userID, bookID string) (Results, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(bookID) == "" {
		return Results{}, apierr.Validation("MISSING_PARAMS",
			errors.New("missing required parameters: userId and bookId"))
	}
	responses, err := s.store.ListResponsesByUserAndBook(ctx, userID, bookID)
	if err != nil {
		return Results{}, err
	}
	questions, err := s.store.ListQuestionsByBook(ctx, bookID)
	if err != nil {
		return Results{}, err
	}
	return Results{
		Responses: responses,
		Questions: questions,
		Summary:   Summarize(responses),
	}, nil
}

func (s *Service) appendEvent(ctx context.Context, typ, key string, data interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, typ, key, data); err != nil {
		s.log.Warn("event append failed", "type", typ, "key", key, "error", err)
	}
}
