package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/evaluation"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Scorer turns a question/transcript pair into a structured 0-10 assessment.
// Model replies are free text; the scorer extracts the first well-formed JSON
// object it can find, so surrounding prose or code fences do not matter. A
// reply with no parseable object is an error, never a silent zero score.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewScorer(generator contentGenerator, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{generator: generator, logger: logger}
}

const promptTemplate = `You are an interview evaluator.

Question:
"%s"

Candidate Answer:
"%s"

Evaluate the answer on:
- clarity
- technical correctness
- completeness

Respond with a JSON object containing:
score (number, 0-10)
feedback (string)
`

func (s *Scorer) Score(ctx context.Context, questionText, transcript string) (*evaluation.Result, error) {
	prompt := fmt.Sprintf(promptTemplate, questionText, transcript)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scorer response", zap.Int("response_len", len(raw)))

	return parseResult(raw)
}

func parseResult(raw string) (*evaluation.Result, error) {
	obj, ok := extractObject(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in scorer reply: %s", truncate(raw, 200))
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(obj), &data); err != nil {
		return nil, fmt.Errorf("parse scorer reply: %w", err)
	}

	score, ok := coerceFloat(data["score"])
	if !ok {
		return nil, fmt.Errorf("scorer reply has no numeric score: %s", truncate(obj, 200))
	}
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	return &evaluation.Result{
		Score:    score,
		Feedback: coerceString(data["feedback"]),
	}, nil
}

// extractObject returns the first balanced, valid JSON object inside raw.
func extractObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	for start != -1 {
		if end, ok := matchBrace(raw, start); ok {
			candidate := raw[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}
		next := strings.IndexByte(raw[start+1:], '{')
		if next == -1 {
			break
		}
		start += 1 + next
	}
	return "", false
}

// matchBrace finds the closing brace for the object opening at start,
// skipping braces inside string literals.
func matchBrace(raw string, start int) (int, bool) {
	depth := 0
	inStr := false
	esc := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case ch == '\\':
				esc = true
			case ch == '"':
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func coerceFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
