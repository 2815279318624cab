package quiz

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
)

// DefaultSessionSize is the question count used when a session request
// does not specify one.
const DefaultSessionSize = 40

// SelectQuestions applies the topic and difficulty filters, then picks a
// uniformly shuffled subset of at most size questions. An exhausted filter
// is a user-facing condition, never an empty session. The shuffle only
// needs to be unbiased enough for quizzes, not cryptographically secure.
func SelectQuestions(questions []Question, topicIDs []string, difficulty string, size int, rng *rand.Rand) ([]Question, error) {
	filtered := FilterQuestions(questions, topicIDs, difficulty)
	if len(filtered) == 0 {
		return nil, apierr.EmptyResult("NO_QUESTIONS_AVAILABLE",
			errors.New("no questions available for the selected topics and difficulty, please try different options"))
	}
	if size <= 0 {
		size = DefaultSessionSize
	}

	picked := make([]Question, len(filtered))
	copy(picked, filtered)
	swap := func(i, j int) { picked[i], picked[j] = picked[j], picked[i] }
	if rng != nil {
		rng.Shuffle(len(picked), swap)
	} else {
		rand.Shuffle(len(picked), swap)
	}

	if len(picked) > size {
		picked = picked[:size]
	}
	return picked, nil
}

// FilterQuestions keeps questions matching the topic id set (empty = no
// filter) and the difficulty ("" or "mixed" = no filter, case-insensitive
// match otherwise).
func FilterQuestions(questions []Question, topicIDs []string, difficulty string) []Question {
	out := questions
	if len(topicIDs) > 0 {
		set := make(map[string]bool, len(topicIDs))
		for _, id := range topicIDs {
			set[id] = true
		}
		kept := make([]Question, 0, len(out))
		for _, q := range out {
			if set[q.TopicID] {
				kept = append(kept, q)
			}
		}
		out = kept
	}
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if difficulty != "" && difficulty != DifficultyMixed {
		kept := make([]Question, 0, len(out))
		for _, q := range out {
			if strings.EqualFold(q.Difficulty, difficulty) {
				kept = append(kept, q)
			}
		}
		out = kept
	}
	return out
}
