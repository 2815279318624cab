package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
)

// MissingAnswerText is reported when the correct option's text cannot be
// looked up; grading still succeeds.
const MissingAnswerText = "Answer not found"

// GradeResult is the outcome of grading one submitted answer.
type GradeResult struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	CorrectText  string `json:"correct_text"`
}

// AnswerIndex resolves a stored canonical answer to an option index. Two
// representations coexist in the table: a numeric index ("2") and an
// option label ("B"). Anything else means a prior normalization bug, so it
// surfaces as a data integrity failure, not a client error.
func AnswerIndex(answer string) (int, error) {
	s := strings.TrimSpace(answer)
	if n, err := strconv.Atoi(s); err == nil {
		if LabelForIndex(n) == "" {
			return 0, apierr.DataIntegrity("INVALID_ANSWER_FORMAT",
				fmt.Errorf("answer index %d out of range", n))
		}
		return n, nil
	}
	if i, ok := IndexForLabel(s); ok {
		return i, nil
	}
	return 0, apierr.DataIntegrity("INVALID_ANSWER_FORMAT",
		fmt.Errorf("unparseable answer %q", answer))
}

// Grade scores selectedIndex against the question's canonical answer and
// reports the correct option's index and text.
func Grade(q Question, selectedIndex int) (GradeResult, error) {
	idx, err := AnswerIndex(q.Answer)
	if err != nil {
		return GradeResult{}, err
	}
	text := strings.TrimSpace(q.Options[LabelForIndex(idx)])
	if text == "" {
		text = MissingAnswerText
	}
	return GradeResult{
		Correct:      selectedIndex == idx,
		CorrectIndex: idx,
		CorrectText:  text,
	}, nil
}
