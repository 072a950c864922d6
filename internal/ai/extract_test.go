package ai

import (
	"errors"
	"testing"
)

func TestExtractJSONFencedWithProse(t *testing.T) {
	raw := "Sure! Here is the data you asked for:\n```json\n{\"a\": 1}\n```\nHope that helps."
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("ExtractJSON error: %v", err)
	}
	if got["a"] != float64(1) {
		t.Fatalf("a=%v, want 1", got["a"])
	}
}

func TestExtractJSONBareFence(t *testing.T) {
	raw := "```\n{\"videos\": [\"x\"]}\n```"
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("ExtractJSON error: %v", err)
	}
	if _, ok := got["videos"]; !ok {
		t.Fatalf("missing videos key: %v", got)
	}
}

func TestExtractJSONUnfencedWithPrefix(t *testing.T) {
	raw := "The result is {\"ok\": true} as requested."
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("ExtractJSON error: %v", err)
	}
	if got["ok"] != true {
		t.Fatalf("ok=%v, want true", got["ok"])
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("no structured data here at all")
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("err=%v, want *ExtractionError", err)
	}
}

func TestExtractJSONMalformedObject(t *testing.T) {
	_, err := ExtractJSON("{\"a\": }")
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("err=%v, want *ExtractionError", err)
	}
}

func TestExtractJSONBraceOrder(t *testing.T) {
	// A closing brace before the opening one is not a balanced span.
	_, err := ExtractJSON("} nothing {")
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("err=%v, want *ExtractionError", err)
	}
}
