package rubric

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Score is the outcome of scoring one candidate bucket
type Score struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// FallbackConfidence marks heuristic scores as low-trust estimates
const FallbackConfidence = 0.3

// Fallback derives a deterministic heuristic score from the signal count.
// Monotonically non-decreasing in n and capped at 100
func Fallback(n int) Score {
	if n < 0 {
		n = 0
	}
	s := float64(n) * 15
	if s > 100 {
		s = 100
	}
	return Score{
		Score:      s,
		Confidence: FallbackConfidence,
		Reasoning:  fmt.Sprintf("heuristic fallback: %d signals", n),
	}
}

// Clamp forces score and confidence into their ranges.
// Both the oracle and fallback paths run through this before returning
func (s Score) Clamp() Score {
	if s.Score < 0 {
		s.Score = 0
	}
	if s.Score > 100 {
		s.Score = 100
	}
	if s.Confidence < 0 {
		s.Confidence = 0
	}
	if s.Confidence > 1 {
		s.Confidence = 1
	}
	return s
}

// ParseResponse extracts the first well-formed JSON object embedded in the
// oracle's free-form reply and decodes it as a Score. Best effort by design:
// any failure here sends the caller down the fallback path.
// Out-of-range score or confidence is treated as a parse failure rather
// than silently clamped, since it means the oracle ignored the rubric
func ParseResponse(text string) (Score, error) {
	obj, ok := firstJSONObject(text)
	if !ok {
		return Score{}, fmt.Errorf("rubric: no JSON object in oracle response")
	}

	var out struct {
		Score      *float64 `json:"score"`
		Confidence *float64 `json:"confidence"`
		Reasoning  string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return Score{}, fmt.Errorf("rubric: decode oracle response: %w", err)
	}
	if out.Score == nil || out.Confidence == nil {
		return Score{}, fmt.Errorf("rubric: oracle response missing score or confidence")
	}
	if *out.Score < 0 || *out.Score > 100 {
		return Score{}, fmt.Errorf("rubric: oracle score %v outside [0,100]", *out.Score)
	}
	if *out.Confidence < 0 || *out.Confidence > 1 {
		return Score{}, fmt.Errorf("rubric: oracle confidence %v outside [0,1]", *out.Confidence)
	}
	return Score{Score: *out.Score, Confidence: *out.Confidence, Reasoning: out.Reasoning}.Clamp(), nil
}

// firstJSONObject scans text for the first balanced brace-delimited object,
// honoring string literals and escapes so prose braces don't confuse it
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	for start >= 0 {
		depth := 0
		inStr := false
		esc := false
		for i := start; i < len(text); i++ {
			c := text[i]
			if inStr {
				switch {
				case esc:
					esc = false
				case c == '\\':
					esc = true
				case c == '"':
					inStr = false
				}
				continue
			}
			switch c {
			case '"':
				inStr = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					// not valid JSON; resume scanning after this opener
					i = len(text)
				}
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			return "", false
		}
		start = start + 1 + next
	}
	return "", false
}
