package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
)

func makeQuestions() []Question {
	// 2 easy on topic t1, 3 medium on topic t2.
	var qs []Question
	for i := 0; i < 2; i++ {
		qs = append(qs, Question{ID: fmt.Sprintf("t1-e%d", i), BookID: "b", TopicID: "t1", Difficulty: "easy"})
	}
	for i := 0; i < 3; i++ {
		qs = append(qs, Question{ID: fmt.Sprintf("t2-m%d", i), BookID: "b", TopicID: "t2", Difficulty: "medium"})
	}
	return qs
}

func TestSelectQuestionsFiltersIntersect(t *testing.T) {
	qs := makeQuestions()
	got, err := SelectQuestions(qs, []string{"t1"}, "easy", 10, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("SelectQuestions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d questions, want exactly the 2 easy t1 ones", len(got))
	}
	for _, q := range got {
		if q.TopicID != "t1" || q.Difficulty != "easy" {
			t.Errorf("leaked question %+v", q)
		}
	}
}

func TestSelectQuestionsMixedIgnoresDifficulty(t *testing.T) {
	got, err := SelectQuestions(makeQuestions(), nil, "mixed", 10, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("SelectQuestions: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("got %d, want all 5", len(got))
	}
}

func TestSelectQuestionsTruncatesToSize(t *testing.T) {
	got, err := SelectQuestions(makeQuestions(), nil, "", 3, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("SelectQuestions: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d, want 3", len(got))
	}
}

func TestSelectQuestionsExhaustedFilter(t *testing.T) {
	_, err := SelectQuestions(makeQuestions(), []string{"t1"}, "hard", 10, nil)
	if err == nil {
		t.Fatal("want error for empty filter result")
	}
	if apierr.CodeOf(err) != "NO_QUESTIONS_AVAILABLE" {
		t.Errorf("code = %q, want NO_QUESTIONS_AVAILABLE", apierr.CodeOf(err))
	}
	if apierr.StatusOf(err) != 400 {
		t.Errorf("status = %d, want 400", apierr.StatusOf(err))
	}
}

func TestSelectQuestionsDeterministicWithSeed(t *testing.T) {
	qs := makeQuestions()
	a, _ := SelectQuestions(qs, nil, "", 5, rand.New(rand.NewSource(42)))
	b, _ := SelectQuestions(qs, nil, "", 5, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("order diverged at %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestSelectQuestionsDoesNotMutateInput(t *testing.T) {
	qs := makeQuestions()
	before := make([]string, len(qs))
	for i, q := range qs {
		before[i] = q.ID
	}
	if _, err := SelectQuestions(qs, nil, "", 2, rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("SelectQuestions: %v", err)
	}
	for i, q := range qs {
		if q.ID != before[i] {
			t.Fatalf("input slice reordered at %d", i)
		}
	}
}

func TestFilterQuestionsEmptyTopicSetMeansNoFilter(t *testing.T) {
	got := FilterQuestions(makeQuestions(), nil, "")
	if len(got) != 5 {
		t.Errorf("got %d, want 5", len(got))
	}
}

func TestFilterQuestionsDifficultyCaseInsensitive(t *testing.T) {
	got := FilterQuestions(makeQuestions(), nil, "EASY")
	if len(got) != 2 {
		t.Errorf("got %d, want 2", len(got))
	}
}
