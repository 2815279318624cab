package genai

import "fmt"

const promptTemplate = `You are a quiz generator.

Given a book text, generate %d multiple choice questions in this exact JSON format:

[
  {
    "question": "What is RTB?",
    "options": {"A": "Real-Time Bidding", "B": "Random Targeting", "C": "Bidder Budget", "D": "Repeatable Test Behavior"},
    "answer": "A",
    "topic": "AdTech Basics",
    "difficulty": "medium"
  }
]

Requirements:
- options: always an object with keys A, B, C, D.
- answer: must be the single letter only (A, B, C, or D) matching the correct option.
- topic: must be a relevant topic/subject from the book content.
- difficulty: must be present (easy, medium, hard).
- No explanations, no reasoning, no markdown, just strict JSON.

Book Text:
%s`

// BuildPrompt renders the generation prompt, truncating the book text to
// charBudget so oversized books do not blow the model's input window.
func BuildPrompt(bookText string, n, charBudget int) string {
	if charBudget > 0 && len(bookText) > charBudget {
		bookText = bookText[:charBudget]
	}
	return fmt.Sprintf(promptTemplate, n, bookText)
}
