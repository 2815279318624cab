package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
)

// Draft is a normalized question that has not been persisted yet; its topic
// is still a name, not an id.
type Draft struct {
	Question   string
	Options    Options
	Answer     string
	Topic      string
	Difficulty string
}

// Rejection records one input element the normalizer dropped and why.
type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Batch is the outcome of normalizing one generated payload. Callers assert
// on Rejections instead of grepping logs for drop counts.
type Batch struct {
	Drafts     []Draft
	Rejections []Rejection
}

func (b Batch) Dropped() int { return len(b.Rejections) }

// rawDraft mirrors one loosely structured payload element. Options and
// Answer stay raw until their shape has been sniffed exactly once here;
// everything downstream sees only the canonical forms.
type rawDraft struct {
	Question   string          `json:"question"`
	Options    json.RawMessage `json:"options"`
	Answer     json.RawMessage `json:"answer"`
	Topic      string          `json:"topic"`
	Difficulty string          `json:"difficulty"`
}

// Normalize turns the generative service's raw text into canonical question
// drafts. A payload that does not parse as a list is terminal; individual
// records are only dropped when, after defaulting, they still have no
// question text — and every drop is counted, never thrown.
func Normalize(raw string) (Batch, error) {
	text := StripCodeFences(raw)

	var items []rawDraft
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return Batch{}, apierr.Upstream("MALFORMED_PAYLOAD", fmt.Errorf("AI generation failed: %w", err))
	}

	var b Batch
	for i, it := range items {
		q := strings.TrimSpace(it.Question)
		if q == "" {
			b.Rejections = append(b.Rejections, Rejection{Index: i, Reason: "missing question text"})
			continue
		}
		opts := resolveOptions(it.Options)
		if len(opts) == 0 {
			b.Rejections = append(b.Rejections, Rejection{Index: i, Reason: "no options"})
			continue
		}
		b.Drafts = append(b.Drafts, Draft{
			Question:   q,
			Options:    opts,
			Answer:     resolveAnswer(it.Answer),
			Topic:      topicOrDefault(it.Topic),
			Difficulty: normalizeDifficulty(it.Difficulty),
		})
	}
	return b, nil
}

// StripCodeFences removes markdown-style ``` wrappers the model sometimes
// puts around its JSON.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// resolveOptions accepts the three shapes the generator produces: an object
// already keyed by the four labels, a string encoding such an object, or an
// ordered list mapped positionally. Any other shape gets the placeholder
// object rather than losing the record; missing labels get placeholder text.
func resolveOptions(raw json.RawMessage) Options {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return placeholderOptions()
	}

	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err == nil {
		return fromObject(obj)
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		var inner map[string]string
		if err := json.Unmarshal([]byte(encoded), &inner); err == nil {
			return fromObject(inner)
		}
		var innerList []string
		if err := json.Unmarshal([]byte(encoded), &innerList); err == nil {
			return fromList(innerList)
		}
		return placeholderOptions()
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return fromList(list)
	}

	return placeholderOptions()
}

func fromObject(src map[string]string) Options {
	out := make(Options, len(OptionLabels))
	for _, label := range OptionLabels {
		v := strings.TrimSpace(src[label])
		if v == "" {
			v = placeholderText(label)
		}
		out[label] = v
	}
	return out
}

func fromList(src []string) Options {
	out := make(Options, len(OptionLabels))
	for i, label := range OptionLabels {
		v := ""
		if i < len(src) {
			v = strings.TrimSpace(src[i])
		}
		if v == "" {
			v = placeholderText(label)
		}
		out[label] = v
	}
	return out
}

func placeholderOptions() Options {
	out := make(Options, len(OptionLabels))
	for _, label := range OptionLabels {
		out[label] = placeholderText(label)
	}
	return out
}

func placeholderText(label string) string { return "Option " + label }

// resolveAnswer accepts a label string ("A".."D"), tolerating a numeric
// index as well, and defaults to the first label for anything unusable.
func resolveAnswer(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return OptionLabels[0]
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if i, ok := IndexForLabel(s); ok {
			return OptionLabels[i]
		}
		if n, err := strconv.Atoi(s); err == nil {
			if label := LabelForIndex(n); label != "" {
				return label
			}
		}
		return OptionLabels[0]
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if label := LabelForIndex(n); label != "" {
			return label
		}
	}
	return OptionLabels[0]
}

func topicOrDefault(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return SentinelTopic
	}
	return topic
}

func normalizeDifficulty(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	if !Difficulties[d] {
		return "medium"
	}
	return d
}
