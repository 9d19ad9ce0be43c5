package query

import (
	"strings"
	"testing"
)

func TestNew_TrimsText(t *testing.T) {
	q, err := New("  red shoes \n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text() != "red shoes" {
		t.Errorf("text = %q", q.Text())
	}
}

func TestNew_EmptyIsAllowed(t *testing.T) {
	q, err := New("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.HasText() || q.HasImage() {
		t.Error("empty query should report no text and no image")
	}
}

func TestNew_RejectsOversizedText(t *testing.T) {
	if _, err := New(strings.Repeat("a", MaxTextLength+1), nil); err == nil {
		t.Fatal("expected error for oversized text")
	}
}

func TestHasImage(t *testing.T) {
	q, err := New("", []byte{0xff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.HasImage() {
		t.Error("expected image")
	}
}
