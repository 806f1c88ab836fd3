package pagination

import "testing"

func TestCursorEnd(t *testing.T) {
	cursor := NewCursor(0, 6)
	want := []int{6, 12, 18, 20, 20}
	for i, expected := range want {
		cursor = cursor.Next()
		if got := cursor.End(20, false); got != expected {
			t.Fatalf("step %d: expected end %d got %d", i+1, expected, got)
		}
	}
	if cursor.HasMore(20, false) {
		t.Fatalf("expected no more items after full coverage")
	}
}

func TestCursorAllUnbounds(t *testing.T) {
	cursor := NewCursor(1, 6)
	if got := cursor.End(20, true); got != 20 {
		t.Fatalf("expected all 20, got %d", got)
	}
	if cursor.HasMore(20, true) {
		t.Fatalf("show all never has more")
	}
	if !cursor.HasMore(20, false) {
		t.Fatalf("first page of 20 should have more")
	}
}

func TestNormalizeSize(t *testing.T) {
	if got := NormalizeSize(0); got != DefaultPageSize {
		t.Fatalf("expected default size, got %d", got)
	}
	if got := NormalizeSize(1000); got != MaxPageSize {
		t.Fatalf("expected max size, got %d", got)
	}
	if got := NewCursor(-4, 3); got.Page != 0 || got.Size != 3 {
		t.Fatalf("unexpected cursor %+v", got)
	}
	if got := NewCursor(0, 6).End(-1, false); got != 0 {
		t.Fatalf("negative totals clamp to zero, got %d", got)
	}
}
