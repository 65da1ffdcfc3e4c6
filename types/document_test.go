package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocumentID(t *testing.T) {
	doc := Document{IDField: "abc", "likes": 3}
	if got := doc.ID(); got != "abc" {
		t.Errorf("expected id %q, got %q", "abc", got)
	}

	if got := (Document{"likes": 3}).ID(); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
	if got := (Document{IDField: 42}).ID(); got != "" {
		t.Errorf("expected empty id for non-string value, got %q", got)
	}
}

func TestDocumentClone(t *testing.T) {
	original := Document{
		IDField: "p1",
		"urls":  map[string]any{"regular": "r", "small": "s"},
		"tags":  []any{map[string]any{"title": "studio"}},
		"likes": 5,
	}

	clone := original.Clone()
	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone differs from original (-want +got):\n%s", diff)
	}

	// Mutating nested values of the clone must not leak back.
	clone["urls"].(map[string]any)["regular"] = "changed"
	clone["tags"].([]any)[0].(map[string]any)["title"] = "changed"
	clone["likes"] = 99

	if original["urls"].(map[string]any)["regular"] != "r" {
		t.Error("nested map mutation leaked into original")
	}
	if original["tags"].([]any)[0].(map[string]any)["title"] != "studio" {
		t.Error("nested array mutation leaked into original")
	}
	if original["likes"] != 5 {
		t.Error("scalar mutation leaked into original")
	}
}

func TestCloneNil(t *testing.T) {
	var doc Document
	if got := doc.Clone(); got != nil {
		t.Errorf("expected nil clone of nil document, got %v", got)
	}
}
