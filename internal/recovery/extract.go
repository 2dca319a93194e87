package recovery

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Accept is an optional shape predicate applied to each parsed candidate.
// A nil Accept accepts every object.
type Accept func(map[string]any) bool

// Strategy names the extraction step that produced an object.
type Strategy string

const (
	StrategyNone    Strategy = ""
	StrategyWhole   Strategy = "whole"
	StrategyFence   Strategy = "fence"
	StrategyBraces  Strategy = "braces"
	StrategyCleanup Strategy = "cleanup"
)

// fencePattern matches ``` blocks with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)```[A-Za-z0-9_+-]*\\s*(.*?)\\s*```")

// Extract returns the first JSON object in text that parses and satisfies
// accept. Text should already be normalized.
func Extract(text string, accept Accept) (map[string]any, bool) {
	obj, s := Locate(text, accept)
	return obj, s != StrategyNone
}

// Locate is Extract that also reports which strategy succeeded.
// Strategies run in order and the first success wins:
//
//  1. the whole text
//  2. each fenced code block body
//  3. each balanced {...} span found by a depth scan
//  4. escape cleanup of the whole text, only if it is brace-delimited
func Locate(text string, accept Accept) (map[string]any, Strategy) {
	if strings.TrimSpace(text) == "" {
		return nil, StrategyNone
	}

	if obj, ok := parseObject(text, accept); ok {
		return obj, StrategyWhole
	}

	for _, m := range fencePattern.FindAllStringSubmatch(text, -1) {
		if obj, ok := parseObject(m[1], accept); ok {
			return obj, StrategyFence
		}
	}

	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end := matchBrace(text, start); end > start {
			if obj, ok := parseObject(text[start:end+1], accept); ok {
				return obj, StrategyBraces
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += 1 + next
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		if obj, ok := parseObject(cleanEscapes(trimmed), accept); ok {
			return obj, StrategyCleanup
		}
	}

	return nil, StrategyNone
}

func parseObject(s string, accept Accept) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	if accept != nil && !accept(obj) {
		return nil, false
	}
	return obj, true
}

// matchBrace returns the index of the '}' closing the '{' at start, or -1.
// Braces inside string literals do not count.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// cleanEscapes rewrites "\/" to "/" and drops backslashes that do not start
// a valid JSON escape. Backslash pairs are consumed together so an escaped
// backslash is never split.
func cleanEscapes(s string) string {
	s = strings.ReplaceAll(s, `\/`, "/")

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			break
		}
		next := s[i+1]
		switch {
		case strings.IndexByte(`"\/bfnrt`, next) >= 0:
			b.WriteByte('\\')
			b.WriteByte(next)
			i++
		case next == 'u' && isHex4(s[i+2:]):
			b.WriteByte('\\')
		}
	}
	return b.String()
}

func isHex4(s string) bool {
	if len(s) < 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
