package quiz

import (
	"context"
	"fmt"
)

// fakeStore is an in-memory Store for exercising service logic without a
// database.
type fakeStore struct {
	books     map[string]Book
	topics    map[string]Topic // id -> topic
	questions map[string]Question
	sessions  map[string]QuizSession
	responses []Response

	topicInserts    int
	questionInserts int

	failInsertQuestion bool
	failGetTopic       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		books:     map[string]Book{},
		topics:    map[string]Topic{},
		questions: map[string]Question{},
		sessions:  map[string]QuizSession{},
	}
}

func (f *fakeStore) CreateBook(_ context.Context, b Book) (Book, error) {
	f.books[b.ID] = b
	return b, nil
}

func (f *fakeStore) GetBook(_ context.Context, id string) (Book, error) {
	b, ok := f.books[id]
	if !ok {
		return Book{}, fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	return b, nil
}

func (f *fakeStore) GetTopicByName(_ context.Context, bookID, name string) (Topic, error) {
	if f.failGetTopic != nil {
		return Topic{}, f.failGetTopic
	}
	for _, t := range f.topics {
		if t.BookID == bookID && t.Name == name {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("topic %s/%s: %w", bookID, name, ErrNotFound)
}

func (f *fakeStore) InsertTopic(_ context.Context, t Topic) (Topic, error) {
	f.topicInserts++
	for _, existing := range f.topics {
		if existing.BookID == t.BookID && existing.Name == t.Name {
			return existing, nil
		}
	}
	f.topics[t.ID] = t
	return t, nil
}

func (f *fakeStore) ListTopics(_ context.Context, bookID string) ([]Topic, error) {
	var out []Topic
	for _, t := range f.topics {
		if t.BookID == bookID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertQuestion(_ context.Context, q Question) (Question, error) {
	f.questionInserts++
	if f.failInsertQuestion {
		return Question{}, fmt.Errorf("insert question: forced failure")
	}
	f.questions[q.ID] = q
	return q, nil
}

func (f *fakeStore) GetQuestion(_ context.Context, id string) (Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return Question{}, fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	return q, nil
}

func (f *fakeStore) ListQuestionsByBook(_ context.Context, bookID string) ([]Question, error) {
	var out []Question
	for _, q := range f.questions {
		if q.BookID == bookID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) GetQuestionsByIDs(_ context.Context, ids []string) ([]Question, error) {
	var out []Question
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSession(_ context.Context, s QuizSession) (QuizSession, error) {
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (QuizSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return QuizSession{}, fmt.Errorf("quiz %s: %w", id, ErrNotFound)
	}
	return s, nil
}

func (f *fakeStore) InsertResponse(_ context.Context, r Response) (Response, error) {
	f.responses = append(f.responses, r)
	return r, nil
}

func (f *fakeStore) ListResponsesBySession(_ context.Context, quizID string) ([]Response, error) {
	var out []Response
	for _, r := range f.responses {
		if r.QuizID == quizID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListResponsesByUserAndBook(_ context.Context, userID, bookID string) ([]Response, error) {
	var out []Response
	for _, r := range f.responses {
		if r.UserID != userID {
			continue
		}
		if q, ok := f.questions[r.QuestionID]; ok && q.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}
