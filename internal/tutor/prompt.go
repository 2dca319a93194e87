package tutor

import (
	"fmt"
	"strings"
)

const quizSystemPrompt = `You are an expert quiz generator for an AI tutor.

Rules:
- Write clear, self-contained questions that are factually correct.
- Multiple choice questions have exactly 4 options labeled "A) ", "B) ", "C) ", "D) " and the correct answer is the letter only.
- True/false questions have the options "True" and "False" and the correct answer is "True" or "False".
- Short answer questions have no options and the correct answer is a short phrase containing the key terms.
- Every question has a brief explanation of the correct answer.
- Answer with a single JSON object and nothing else.`

const pathSystemPrompt = `You are an expert curriculum designer for an AI tutor.

Rules:
- Build study plans that progress from fundamentals to advanced material.
- Give every topic a realistic time estimate and concrete subtopics.
- Only include links and videos you are confident exist.
- Answer with a single JSON object and nothing else.`

// buildQuizPrompt returns the base prompt, sent on every attempt, and the
// format instructions, sent on the first attempt only.
func buildQuizPrompt(req QuizRequest) (base, instructions string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a quiz about %q with %d questions at %s difficulty level.\n", req.Topic, req.QuestionCount, req.Difficulty)
	fmt.Fprintf(&b, "Question types: %s.\n", strings.Join(req.QuestionTypes, ", "))
	fmt.Fprintf(&b, "Time limit: %d minutes.\n", req.TimeLimit)
	fmt.Fprintf(&b, "All questions must be specifically about %q.", req.Topic)
	base = b.String()

	b.Reset()
	b.WriteString("Your response must be ONLY a valid JSON object in this exact format:\n")
	fmt.Fprintf(&b, `{
  "quiz_title": "A creative, specific title (not just '%s Quiz')",
  "topic": %q,
  "difficulty": %q,
  "time_limit": %d,
  "questions": [
    {
      "question_number": 1,
      "question": "What is...",
      "type": "mcq",
      "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
      "correct_answer": "A",
      "explanation": "Why this is correct"
    },
    {
      "question_number": 2,
      "question": "True or False: ...",
      "type": "true_false",
      "options": ["True", "False"],
      "correct_answer": "True",
      "explanation": "Why this is correct"
    },
    {
      "question_number": 3,
      "question": "Explain...",
      "type": "short_answer",
      "correct_answer": "Expected answer",
      "explanation": "Detailed explanation"
    }
  ]
}
`, req.Topic, req.Topic, req.Difficulty, req.TimeLimit)
	fmt.Fprintf(&b, "Include exactly %d questions using only these types: %s.\n", req.QuestionCount, strings.Join(req.QuestionTypes, ", "))
	b.WriteString("Respond with ONLY the JSON object, no extra text.")
	instructions = b.String()
	return base, instructions
}

// buildPathPrompt returns the learner's request as the base prompt and the
// study-plan format, with learner preferences, as instructions.
func buildPathPrompt(req PathRequest) (base, instructions string) {
	p := req.Preferences

	var b strings.Builder
	fmt.Fprintf(&b, "As a %s, generate a comprehensive study plan with a detailed weekly breakdown.\n", p.Role)
	fmt.Fprintf(&b, "Daily study time: %v hrs, Language: %s, Target audience: %s.\n", p.HoursPerDay, p.Language, p.AgeGroup)
	b.WriteString("Use a creative, engaging course title that reflects the subject without generic terms like 'for beginners' or age references.\n")
	b.WriteString("Return the plan as JSON with course duration, links, topics, subtopics and time estimates, using only this structure:\n")
	b.WriteString(`{
  "course_duration": "",
  "name": "",
  "links": ["", ""],
  "topics": [
    {
      "name": "",
      "description": "",
      "time_required": "",
      "links": ["https://www.medium.com/blog?v=abc"],
      "videos": ["https://www.youtube.com/watch?v=abc"],
      "subtopics": [
        {"name": "", "description": ""}
      ]
    }
  ]
}
`)
	b.WriteString("No markdown, no extra characters, no backslashes.")
	return req.Prompt, b.String()
}
