package quiz

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) by stores when a referenced row is
// absent.
var ErrNotFound = errors.New("not found")

// Store is the row-level persistence contract for the quiz domain. Every
// mutation is a single atomic row operation; batch consistency is
// best-effort by design.
type Store interface {
	CreateBook(ctx context.Context, b Book) (Book, error)
	GetBook(ctx context.Context, id string) (Book, error)

	// GetTopicByName looks up the topic by exact (book, name) match.
	GetTopicByName(ctx context.Context, bookID, name string) (Topic, error)
	// InsertTopic is an insert-if-absent: when a concurrent creation
	// already inserted the same (book, name) pair, it returns the existing
	// row instead of a duplicate-key error.
	InsertTopic(ctx context.Context, t Topic) (Topic, error)
	ListTopics(ctx context.Context, bookID string) ([]Topic, error)

	InsertQuestion(ctx context.Context, q Question) (Question, error)
	GetQuestion(ctx context.Context, id string) (Question, error)
	ListQuestionsByBook(ctx context.Context, bookID string) ([]Question, error)
	GetQuestionsByIDs(ctx context.Context, ids []string) ([]Question, error)

	CreateSession(ctx context.Context, s QuizSession) (QuizSession, error)
	GetSession(ctx context.Context, id string) (QuizSession, error)

	InsertResponse(ctx context.Context, r Response) (Response, error)
	ListResponsesBySession(ctx context.Context, quizID string) ([]Response, error)
	ListResponsesByUserAndBook(ctx context.Context, userID, bookID string) ([]Response, error)
}
