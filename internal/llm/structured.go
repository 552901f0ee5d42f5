package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks a decoded value. A nil Validator accepts everything.
type Validator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in raw model output into
// T. Markdown fences, surrounding prose and // comments are tolerated.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	block := firstObject(stripFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var out T
	if err := json.Unmarshal([]byte(stripLineComments(block)), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(out); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// stripFences drops markdown fence lines and keeps their content.
func stripFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scanner tracks whether a byte position is inside a JSON string.
type scanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is structural (outside a string
// and not a quote).
func (sc *scanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return false
	case sc.inString && c == '\\':
		sc.escaped = true
		return false
	case c == '"':
		sc.inString = !sc.inString
		return false
	default:
		return !sc.inString
	}
}

// firstObject returns the first balanced {...} block of s, or "".
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	var sc scanner
	depth := 0
	for i := start; i < len(s); i++ {
		if !sc.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// stripLineComments removes // comments outside string values. Some models
// annotate JSON despite being told not to.
func stripLineComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var sc scanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) && c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
