// Package document turns recovered JSON objects into typed quizzes and
// learning paths. Decoding never fails: missing or malformed fields take
// empty defaults so grading can always proceed.
package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Question types.
const (
	TypeMCQ         = "mcq"
	TypeTrueFalse   = "true_false"
	TypeShortAnswer = "short_answer"
)

// Question is one quiz item.
type Question struct {
	Number        int      `json:"question_number"`
	Text          string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Valid reports whether the question can be graded meaningfully: it has
// text and a reference answer, and choice questions carry options. Only
// choice questions may carry options.
func (q Question) Valid() bool {
	if strings.TrimSpace(q.Text) == "" || strings.TrimSpace(q.CorrectAnswer) == "" {
		return false
	}
	switch q.Type {
	case TypeMCQ:
		return len(q.Options) >= 2
	case TypeTrueFalse:
		return len(q.Options) > 0
	default:
		return len(q.Options) == 0
	}
}

// Quiz is a generated quiz.
type Quiz struct {
	ID         string     `json:"quiz_id"`
	Title      string     `json:"quiz_title"`
	Topic      string     `json:"topic"`
	Difficulty string     `json:"difficulty"`
	TimeLimit  int        `json:"time_limit"`
	Questions  []Question `json:"questions"`
}

// Public returns a copy without reference answers or explanations.
func (q Quiz) Public() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, qq := range q.Questions {
		qq.CorrectAnswer = ""
		qq.Explanation = ""
		if qq.Options != nil {
			qq.Options = append([]string(nil), qq.Options...)
		}
		out.Questions[i] = qq
	}
	return out
}

// DecodeQuiz converts a recovered quiz object. A chat envelope of the form
// {"type": "quiz", "quiz_data": {...}} is unwrapped first.
func DecodeQuiz(obj map[string]any) Quiz {
	if inner, ok := obj["quiz_data"].(map[string]any); ok {
		if _, has := obj["questions"]; !has {
			obj = inner
		}
	}

	q := Quiz{
		ID:         str(first(obj, "quiz_id", "id")),
		Title:      str(first(obj, "quiz_title", "title")),
		Topic:      str(obj["topic"]),
		Difficulty: str(obj["difficulty"]),
		TimeLimit:  num(obj["time_limit"]),
	}

	items, _ := obj["questions"].([]any)
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		q.Questions = append(q.Questions, decodeQuestion(m, i+1))
	}
	return q
}

func decodeQuestion(m map[string]any, pos int) Question {
	q := Question{
		Number:        num(first(m, "question_number", "number")),
		Text:          str(first(m, "question", "text")),
		Type:          strings.ToLower(strings.TrimSpace(str(m["type"]))),
		Options:       strList(m["options"]),
		CorrectAnswer: str(first(m, "correct_answer", "answer")),
		Explanation:   str(m["explanation"]),
	}
	if q.Number <= 0 {
		q.Number = pos
	}
	if q.Type == "" {
		q.Type = TypeMCQ
	}
	if q.Type == TypeShortAnswer {
		q.Options = nil
	}
	return q
}

// Subtopic is a named step within a topic.
type Subtopic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Topic is one stage of a learning path.
type Topic struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	TimeRequired string     `json:"time_required"`
	Links        []string   `json:"links,omitempty"`
	Videos       []string   `json:"videos,omitempty"`
	Subtopics    []Subtopic `json:"subtopics,omitempty"`
}

// LearningPath is a generated study plan.
type LearningPath struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Duration    string   `json:"course_duration"`
	Links       []string `json:"links,omitempty"`
	Topics      []Topic  `json:"topics"`
}

// DecodeLearningPath converts a recovered learning-path object.
func DecodeLearningPath(obj map[string]any) LearningPath {
	p := LearningPath{
		Name:        str(first(obj, "name", "title")),
		Description: str(obj["description"]),
		Duration:    str(first(obj, "course_duration", "duration")),
		Links:       strList(obj["links"]),
	}

	items, _ := obj["topics"].([]any)
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := Topic{
			Name:         str(m["name"]),
			Description:  str(m["description"]),
			TimeRequired: str(m["time_required"]),
			Links:        strList(m["links"]),
			Videos:       strList(m["videos"]),
		}
		subs, _ := m["subtopics"].([]any)
		for _, s := range subs {
			if sm, ok := s.(map[string]any); ok {
				t.Subtopics = append(t.Subtopics, Subtopic{Name: str(sm["name"]), Description: str(sm["description"])})
			}
		}
		p.Topics = append(p.Topics, t)
	}
	return p
}

func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// str stringifies scalars. Objects and lists decode to "".
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func num(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func strList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := str(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
