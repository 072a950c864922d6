package schema

import "testing"

func TestJSONMapScanMalformed(t *testing.T) {
	var m JSONMap
	if err := m.Scan("not json at all"); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Fatalf("malformed blob should scan as empty map, got %v", m)
	}
}

func TestJSONMapScanRoundTrip(t *testing.T) {
	src := JSONMap{"videos": []any{"a", "b"}, "note": "fallback"}
	v, err := src.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}

	var got JSONMap
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if got["note"] != "fallback" {
		t.Fatalf("note=%v, want fallback", got["note"])
	}
}

func TestJSONMapNilValue(t *testing.T) {
	var m JSONMap
	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if v != "{}" {
		t.Fatalf("nil map should serialize as {}, got %v", v)
	}
}

func TestValidators(t *testing.T) {
	if !ValidStatus(StatusInProgress) || ValidStatus("paused") {
		t.Fatal("status validation mismatch")
	}
	if !ValidCategory(CategoryDevops) || ValidCategory("ml") {
		t.Fatal("category validation mismatch")
	}
	if !ValidResourceType(ResourceArticle) || ValidResourceType("podcast") {
		t.Fatal("resource type validation mismatch")
	}
}
