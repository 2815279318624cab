package quiz

// SentinelTopic is the grouping used when the generator names no topic.
const SentinelTopic = "General"

// DifficultyMixed disables difficulty filtering on a session.
const DifficultyMixed = "mixed"

// OptionLabels is the fixed label set of a multiple-choice question. Every
// stored question has exactly these four options populated.
var OptionLabels = [4]string{"A", "B", "C", "D"}

// Difficulties is the closed set a question's difficulty tag comes from.
var Difficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// Options maps each label to its display text.
type Options map[string]string

// LabelForIndex returns the option label at i, or "" when out of range.
func LabelForIndex(i int) string {
	if i < 0 || i >= len(OptionLabels) {
		return ""
	}
	return OptionLabels[i]
}

// IndexForLabel resolves a label such as "b" to its option index.
func IndexForLabel(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for i, l := range OptionLabels {
		if l[0] == c {
			return i, true
		}
	}
	return 0, false
}

// Book is an uploaded source document. Immutable after creation.
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FileURL   string `json:"file_url"`
	RawText   string `json:"raw_text,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Topic is a named subject grouping of questions within one book. At most
// one topic exists per (book, name) pair.
type Topic struct {
	ID     string `json:"id"`
	BookID string `json:"book_id"`
	Name   string `json:"name"`
}

// Question is a canonical multiple-choice question. Answer holds either an
// option label ("B") or a numeric index ("1") — older rows use the numeric
// form, so both must resolve at read time (see AnswerIndex).
type Question struct {
	ID         string  `json:"id"`
	BookID     string  `json:"book_id"`
	TopicID    string  `json:"topic_id,omitempty"`
	Question   string  `json:"question"`
	Options    Options `json:"options"`
	Answer     string  `json:"answer"`
	Difficulty string  `json:"difficulty"`
}

// QuizSession is an immutable, materialized selection of questions offered
// to one user for one attempt. QuestionIDs is the exact ordered selection;
// re-fetching the session replays it without re-running selection.
type QuizSession struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	BookID       string   `json:"book_id"`
	Topics       []string `json:"topics"`
	Difficulty   string   `json:"difficulty"`
	TimeLimit    int      `json:"time_limit"`
	NumQuestions int      `json:"num_questions"`
	QuestionIDs  []string `json:"question_ids"`
	CreatedAt    int64    `json:"created_at"`
}

// Response is one graded answer submission. Append-only; aggregation
// tolerates duplicate rows for the same (user, question, session).
type Response struct {
	ID            string  `json:"id"`
	QuestionID    string  `json:"question_id"`
	QuizID        string  `json:"quiz_id,omitempty"`
	UserID        string  `json:"user_id"`
	SelectedIndex int     `json:"selected_index"`
	Correct       bool    `json:"correct"`
	TimeTaken     float64 `json:"time_taken"`
	CreatedAt     int64   `json:"created_at"`
}
