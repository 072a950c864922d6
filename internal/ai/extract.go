package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractionError reports that provider output contained no parseable JSON
// object. Callers treat it the same as a provider failure: fall back, do not
// propagate.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract json: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extract json: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ExtractJSON isolates the first balanced {...} span in model output and
// parses it. Markdown code fences around the object are stripped first,
// preferring a block tagged as json.
func ExtractJSON(raw string) (map[string]any, error) {
	text := stripFences(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, &ExtractionError{Reason: "no JSON object in response"}
	}
	text = text[start : end+1]

	var result map[string]any
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &ExtractionError{Reason: "response is not valid JSON", Err: err}
	}
	return result, nil
}

// stripFences removes a ```json ... ``` (or plain ```) wrapper when present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, "```") {
		return text
	}

	fenceStart := strings.Index(text, "```json")
	if fenceStart == -1 {
		fenceStart = strings.Index(text, "```")
	}
	if fenceStart != -1 {
		if nl := strings.Index(text[fenceStart:], "\n"); nl != -1 {
			text = text[fenceStart+nl+1:]
		}
	}
	if fenceEnd := strings.LastIndex(text, "```"); fenceEnd != -1 {
		text = text[:fenceEnd]
	}

	return strings.TrimSpace(text)
}
