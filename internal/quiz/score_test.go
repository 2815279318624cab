package quiz

import (
	"testing"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
)

func TestAnswerIndexBothForms(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"A", 0},
		{"b", 1},
		{" C ", 2},
		{"0", 0},
		{"2", 2},
		{"3", 3},
	}
	for _, c := range cases {
		got, err := AnswerIndex(c.in)
		if err != nil {
			t.Errorf("AnswerIndex(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("AnswerIndex(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestAnswerIndexInvalid(t *testing.T) {
	for _, in := range []string{"", "E", "4", "-1", "yes", "AB"} {
		_, err := AnswerIndex(in)
		if err == nil {
			t.Errorf("AnswerIndex(%q): want error", in)
			continue
		}
		if apierr.CodeOf(err) != "INVALID_ANSWER_FORMAT" {
			t.Errorf("AnswerIndex(%q) code = %q", in, apierr.CodeOf(err))
		}
		if apierr.StatusOf(err) != 500 {
			t.Errorf("AnswerIndex(%q) status = %d, want 500 (stored-data bug, not client error)", in, apierr.StatusOf(err))
		}
	}
}

func TestGradeLabelAnswer(t *testing.T) {
	q := Question{
		Options: Options{"A": "wrong", "B": "right", "C": "also wrong", "D": "nope"},
		Answer:  "B",
	}
	g, err := Grade(q, 1)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !g.Correct || g.CorrectIndex != 1 || g.CorrectText != "right" {
		t.Errorf("grade = %+v", g)
	}

	g, err = Grade(q, 2)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if g.Correct {
		t.Error("index 2 graded correct against answer B")
	}
}

func TestGradeNumericAnswer(t *testing.T) {
	q := Question{
		Options: Options{"A": "a", "B": "b", "C": "c", "D": "d"},
		Answer:  "2",
	}
	g, err := Grade(q, 2)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !g.Correct || g.CorrectIndex != 2 || g.CorrectText != "c" {
		t.Errorf("grade = %+v", g)
	}
}

func TestGradeMissingOptionText(t *testing.T) {
	q := Question{Options: Options{}, Answer: "D"}
	g, err := Grade(q, 3)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if g.CorrectText != MissingAnswerText {
		t.Errorf("text = %q, want %q", g.CorrectText, MissingAnswerText)
	}
	if !g.Correct {
		t.Error("grading must still succeed without option text")
	}
}
