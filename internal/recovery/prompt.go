package recovery

import (
	"fmt"
	"strings"
)

// fieldHints lists what each element of the required list should carry.
var fieldHints = map[Shape]string{
	ShapeQuiz:         "question_number, question, type, options, correct_answer, explanation",
	ShapeLearningPath: "name, description, time_required, links, videos, subtopics",
}

// itemNouns names the elements of each shape's required list.
var itemNouns = map[Shape]string{
	ShapeQuiz:         "question",
	ShapeLearningPath: "topic",
}

// InitialPrompt is the first-attempt prompt: base prompt plus task
// instructions.
func InitialPrompt(base, instructions string) string {
	if instructions == "" {
		return base
	}
	return base + " " + instructions
}

// CorrectivePrompt is sent on every retry. Task instructions are replaced by
// a strict instruction set naming the required field.
func CorrectivePrompt(base string, shape Shape) string {
	field := shape.RequiredField()
	noun := itemNouns[shape]

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nThe previous response was not valid JSON. Generate a new response that:\n")
	b.WriteString("1. Contains ONLY valid JSON - no markdown, no code blocks, no extra text\n")
	fmt.Fprintf(&b, "2. Includes a top-level '%s' field with an array of %s objects\n", field, noun)
	if hint := fieldHints[shape]; hint != "" {
		fmt.Fprintf(&b, "3. Gives each %s: %s\n", noun, hint)
	} else {
		b.WriteString("3. Follows the structure requested above\n")
	}
	b.WriteString("4. Is properly formatted and parseable\n")
	b.WriteString("5. Has no text before or after the JSON object\n")
	b.WriteString("6. Starts directly with { and ends with }\n")
	fmt.Fprintf(&b, "IMPORTANT: Return ONLY valid JSON with a '%s' field containing an array of %s objects.", field, noun)
	return b.String()
}
