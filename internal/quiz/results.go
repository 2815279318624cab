package quiz

import "math"

// Summary aggregates a session's stored responses.
type Summary struct {
	Total     int     `json:"total"`
	Correct   int     `json:"correct"`
	Accuracy  int     `json:"accuracy"`
	TotalTime float64 `json:"totalTime"`
}

// Summarize is a pure fold over whatever rows are stored: duplicates are
// counted, missing time values count as zero, and an empty set yields the
// zero summary rather than a division fault.
func Summarize(responses []Response) Summary {
	var s Summary
	s.Total = len(responses)
	for _, r := range responses {
		if r.Correct {
			s.Correct++
		}
		s.TotalTime += r.TimeTaken
	}
	if s.Total > 0 {
		s.Accuracy = int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
	}
	return s
}
