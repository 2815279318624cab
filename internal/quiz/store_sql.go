package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLStore implements Store over database/sql; it works against both the
// sqlite and postgres schemas from internal/db.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreateBook(ctx context.Context, b Book) (Book, error) {
	if b.CreatedAt == 0 {
		b.CreatedAt = time.Now().Unix()
	}
	var userID interface{}
	if b.UserID != "" {
		userID = b.UserID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO books (id,title,file_url,raw_text,user_id,created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		b.ID, b.Title, b.FileURL, b.RawText, userID, b.CreatedAt)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *SQLStore) GetBook(ctx context.Context, id string) (Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,file_url,raw_text,user_id,created_at FROM books WHERE id=$1`, id)
	var b Book
	var userID sql.NullString
	if err := row.Scan(&b.ID, &b.Title, &b.FileURL, &b.RawText, &userID, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, fmt.Errorf("book %s: %w", id, ErrNotFound)
		}
		return Book{}, err
	}
	b.UserID = userID.String
	return b, nil
}

func (s *SQLStore) GetTopicByName(ctx context.Context, bookID, name string) (Topic, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,book_id,name FROM topics WHERE book_id=$1 AND name=$2`, bookID, name)
	var t Topic
	if err := row.Scan(&t.ID, &t.BookID, &t.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Topic{}, fmt.Errorf("topic %q: %w", name, ErrNotFound)
		}
		return Topic{}, err
	}
	return t, nil
}

// InsertTopic relies on the (book_id, name) unique constraint: the insert
// is a no-op when a concurrent creation won the race, and the re-read
// returns whichever row ended up in the table.
func (s *SQLStore) InsertTopic(ctx context.Context, t Topic) (Topic, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO topics (id,book_id,name) VALUES ($1,$2,$3)
		 ON CONFLICT (book_id,name) DO NOTHING`,
		t.ID, t.BookID, t.Name)
	if err != nil {
		return Topic{}, err
	}
	return s.GetTopicByName(ctx, t.BookID, t.Name)
}

func (s *SQLStore) ListTopics(ctx context.Context, bookID string) ([]Topic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,book_id,name FROM topics WHERE book_id=$1 ORDER BY name`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.BookID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) InsertQuestion(ctx context.Context, q Question) (Question, error) {
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Question{}, err
	}
	var topicID interface{}
	if q.TopicID != "" {
		topicID = q.TopicID
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO questions (id,book_id,topic_id,question,options_json,answer,difficulty)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		q.ID, q.BookID, topicID, q.Question, string(oj), q.Answer, q.Difficulty)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,book_id,topic_id,question,options_json,answer,difficulty FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, fmt.Errorf("question %s: %w", id, ErrNotFound)
		}
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) ListQuestionsByBook(ctx context.Context, bookID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,book_id,topic_id,question,options_json,answer,difficulty FROM questions WHERE book_id=$1`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

func (s *SQLStore) GetQuestionsByIDs(ctx context.Context, ids []string) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(
		`SELECT id,book_id,topic_id,question,options_json,answer,difficulty FROM questions WHERE id IN (%s)`,
		strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

func (s *SQLStore) CreateSession(ctx context.Context, q QuizSession) (QuizSession, error) {
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	if q.Topics == nil {
		q.Topics = []string{}
	}
	if q.QuestionIDs == nil {
		q.QuestionIDs = []string{}
	}
	tj, err := json.Marshal(q.Topics)
	if err != nil {
		return QuizSession{}, err
	}
	qj, err := json.Marshal(q.QuestionIDs)
	if err != nil {
		return QuizSession{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id,user_id,book_id,topics_json,difficulty,time_limit,num_questions,question_ids_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		q.ID, q.UserID, q.BookID, string(tj), q.Difficulty, q.TimeLimit, q.NumQuestions, string(qj), q.CreatedAt)
	if err != nil {
		return QuizSession{}, err
	}
	return q, nil
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (QuizSession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,book_id,topics_json,difficulty,time_limit,num_questions,question_ids_json,created_at
		 FROM quizzes WHERE id=$1`, id)
	var q QuizSession
	var tj, qj string
	if err := row.Scan(&q.ID, &q.UserID, &q.BookID, &tj, &q.Difficulty, &q.TimeLimit, &q.NumQuestions, &qj, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuizSession{}, fmt.Errorf("quiz session %s: %w", id, ErrNotFound)
		}
		return QuizSession{}, err
	}
	if err := json.Unmarshal([]byte(tj), &q.Topics); err != nil {
		q.Topics = []string{}
	}
	if err := json.Unmarshal([]byte(qj), &q.QuestionIDs); err != nil {
		return QuizSession{}, fmt.Errorf("quiz session %s: malformed question id list: %w", id, err)
	}
	return q, nil
}

func (s *SQLStore) InsertResponse(ctx context.Context, r Response) (Response, error) {
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	var quizID interface{}
	if r.QuizID != "" {
		quizID = r.QuizID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (id,question_id,quiz_id,user_id,selected_index,correct,time_taken,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.QuestionID, quizID, r.UserID, r.SelectedIndex, r.Correct, r.TimeTaken, r.CreatedAt)
	if err != nil {
		return Response{}, err
	}
	return r, nil
}

func (s *SQLStore) ListResponsesBySession(ctx context.Context, quizID string) ([]Response, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,question_id,quiz_id,user_id,selected_index,correct,time_taken,created_at
		 FROM responses WHERE quiz_id=$1 ORDER BY created_at`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResponses(rows)
}

func (s *SQLStore) ListResponsesByUserAndBook(ctx context.Context, userID, bookID string) ([]Response, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id,r.question_id,r.quiz_id,r.user_id,r.selected_index,r.correct,r.time_taken,r.created_at
		 FROM responses r JOIN questions q ON q.id = r.question_id
		 WHERE r.user_id=$1 AND q.book_id=$2 ORDER BY r.created_at`, userID, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResponses(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var topicID sql.NullString
	var oj string
	if err := row.Scan(&q.ID, &q.BookID, &topicID, &q.Question, &oj, &q.Answer, &q.Difficulty); err != nil {
		return Question{}, err
	}
	q.TopicID = topicID.String
	if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
		return Question{}, fmt.Errorf("question %s: malformed options: %w", q.ID, err)
	}
	return q, nil
}

func collectQuestions(rows *sql.Rows) ([]Question, error) {
	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func collectResponses(rows *sql.Rows) ([]Response, error) {
	var out []Response
	for rows.Next() {
		var r Response
		var quizID sql.NullString
		var timeTaken sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.QuestionID, &quizID, &r.UserID, &r.SelectedIndex, &r.Correct, &timeTaken, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.QuizID = quizID.String
		r.TimeTaken = timeTaken.Float64
		out = append(out, r)
	}
	return out, rows.Err()
}
