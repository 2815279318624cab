package quiz

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.Correct != 0 || s.Accuracy != 0 || s.TotalTime != 0 {
		t.Errorf("summary = %+v, want zeros", s)
	}
}

func TestSummarizeRoundsAccuracy(t *testing.T) {
	responses := []Response{
		{Correct: true, TimeTaken: 4.5},
		{Correct: true, TimeTaken: 10},
		{Correct: false},
	}
	s := Summarize(responses)
	if s.Total != 3 || s.Correct != 2 {
		t.Fatalf("summary = %+v", s)
	}
	if s.Accuracy != 67 {
		t.Errorf("accuracy = %d, want 67 (2/3 rounded)", s.Accuracy)
	}
	if s.TotalTime != 14.5 {
		t.Errorf("totalTime = %v, want 14.5", s.TotalTime)
	}
}

func TestSummarizeCountsDuplicates(t *testing.T) {
	r := Response{QuestionID: "q1", Correct: true, TimeTaken: 1}
	s := Summarize([]Response{r, r, r})
	if s.Total != 3 || s.Correct != 3 || s.Accuracy != 100 {
		t.Errorf("summary = %+v", s)
	}
}
