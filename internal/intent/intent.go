// Package intent recognizes quiz requests and quiz answers in free-form
// chat messages.
package intent

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// QuizIntent is a detected request for a quiz.
type QuizIntent struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"num_questions"`
}

// DefaultQuestionCount is used when the message names no usable count.
const DefaultQuestionCount = 5

var triggers = []string{
	"make a quiz", "create a quiz", "quiz me", "test me",
	"give me a quiz", "start a quiz", "quiz about",
	"test my knowledge", "create questions",
}

var topicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`quiz (?:about|on|for) (.+?)(?:\s|$|,|\.)`),
	regexp.MustCompile(`(?:test|quiz) me (?:about|on|for) (.+?)(?:\s|$|,|\.)`),
	regexp.MustCompile(`create a (.+?) quiz`),
	regexp.MustCompile(`make a quiz about (.+?)(?:\s|$|,|\.)`),
	regexp.MustCompile(`(.+?) questions`),
}

var fillerRe = regexp.MustCompile(`\b(the|a|an|some|my)\b`)

var topicKeywords = []struct {
	topic string
	words []string
}{
	{"Python Programming", []string{"python", "programming", "code", "coding"}},
	{"Mathematics", []string{"math", "mathematics", "algebra", "calculus"}},
	{"Science", []string{"science", "physics", "chemistry", "biology"}},
	{"History", []string{"history", "historical", "past"}},
}

var numberRe = regexp.MustCompile(`\b(\d+)\b`)

// DetectQuizRequest reports whether message asks for a quiz and, if so,
// the topic, difficulty and question count it implies.
func DetectQuizRequest(message string) (QuizIntent, bool) {
	lower := strings.ToLower(message)
	if !containsAny(lower, triggers) {
		return QuizIntent{}, false
	}
	return QuizIntent{
		Topic:         extractTopic(lower),
		Difficulty:    extractDifficulty(lower),
		QuestionCount: extractCount(message),
	}, true
}

func extractTopic(lower string) string {
	for _, re := range topicPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		topic := strings.Join(strings.Fields(fillerRe.ReplaceAllString(m[1], "")), " ")
		if topic != "" {
			return titleCase(topic)
		}
	}
	for _, k := range topicKeywords {
		if containsAny(lower, k.words) {
			return k.topic
		}
	}
	return "General Knowledge"
}

func extractDifficulty(lower string) string {
	switch {
	case containsAny(lower, []string{"easy", "simple", "basic", "beginner"}):
		return "easy"
	case containsAny(lower, []string{"hard", "difficult", "advanced", "expert"}):
		return "hard"
	default:
		return "medium"
	}
}

func extractCount(message string) int {
	for _, m := range numberRe.FindAllStringSubmatch(message, -1) {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 1 && n <= 20 {
			return n
		}
	}
	return DefaultQuestionCount
}

var (
	letterRe   = regexp.MustCompile(`\b[A-D]\b`)
	numberedRe = regexp.MustCompile(`\d+[.)]\s*([A-D])`)
	boolRe     = regexp.MustCompile(`(?i)\b(true|false)\b`)
	splitRe    = regexp.MustCompile(`[,\n]`)
)

// ParseAnswers extracts exactly n answers from message. It tries, in order,
// bare letters, numbered letters, true/false lists and comma or newline
// separated text.
func ParseAnswers(message string, n int) ([]string, bool) {
	message = strings.TrimSpace(message)
	if n <= 0 || message == "" {
		return nil, false
	}
	upper := strings.ToUpper(message)

	if letters := letterRe.FindAllString(upper, -1); len(letters) == n {
		return letters, true
	}

	if m := numberedRe.FindAllStringSubmatch(upper, -1); len(m) == n {
		out := make([]string, n)
		for i, g := range m {
			out[i] = g[1]
		}
		return out, true
	}

	if m := boolRe.FindAllString(message, -1); len(m) == n {
		out := make([]string, n)
		for i, b := range m {
			out[i] = titleCase(strings.ToLower(b))
		}
		return out, true
	}

	var parts []string
	for _, p := range splitRe.Split(message, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == n {
		return parts, true
	}
	return nil, false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
