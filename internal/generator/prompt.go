package generator

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the instruction sent to the model for one batch.
func BuildPrompt(difficulty string, count int, topics []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple-choice programming quiz questions for %s level.\n\n", count, difficulty)
	b.WriteString("Topics to cover (distribute questions across these topics):\n")
	for i, topic := range topics {
		fmt.Fprintf(&b, "%d. %s\n", i+1, topic)
	}
	fmt.Fprintf(&b, `
Requirements:
- Generate exactly %d questions
- Focus on fundamental concepts for %s learners
- Create exactly 4 answer options (A, B, C, D) for each question
- Make sure one answer is clearly correct for each question
- Keep language simple and educational
- Questions should test understanding, not memorization
- Distribute questions evenly across the topics

Return ONLY valid JSON in this exact format:
{
  "questions": [
    {
      "topic": "Topic name here",
      "question": "Your question here",
      "options": {
        "A": "First option",
        "B": "Second option",
        "C": "Third option",
        "D": "Fourth option"
      },
      "answer": "B"
    }
  ]
}`, count, difficulty)
	return b.String()
}

// StripFences removes a surrounding markdown code block (``` or ```json).
func StripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimPrefix(cleaned, "json")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
