package godb

import "testing"

func TestIsKind(t *testing.T) {
	err := newErr(PageFullError, "page %v is full", 7)
	if !IsKind(err, PageFullError) {
		t.Fatal("IsKind should match the error's own kind")
	}
	if IsKind(err, IoError) {
		t.Fatal("IsKind should not match an unrelated kind")
	}
	if IsKind(nil, PageFullError) {
		t.Fatal("IsKind(nil, ...) should be false")
	}
}

func TestGoDBErrorMessage(t *testing.T) {
	err := newErr(TransactionAbortedError, "tid %d timed out", 5)
	want := "TransactionAborted: tid 5 timed out"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
