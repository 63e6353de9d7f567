package textnorm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines_UnifiesLineEndings(t *testing.T) {
	got := Lines("one\r\ntwo\rthree\nfour")
	want := []string{"one", "two", "three", "four"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLines_CollapsesWhitespaceAndDropsBlanks(t *testing.T) {
	got := Lines("  Step 1:\t  do   this  \n\n   \n then  that ")
	want := []string{"Step 1: do this", "then that"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLines_EmptyInput(t *testing.T) {
	if got := Lines(""); len(got) != 0 {
		t.Errorf("expected no lines, got %q", got)
	}
	if got := Lines(" \n\t\n"); len(got) != 0 {
		t.Errorf("expected no lines for whitespace-only input, got %q", got)
	}
}

func TestKey_LowercasesAndCollapses(t *testing.T) {
	if got := Key("  Use  Prefix\nABC "); got != "use prefix abc" {
		t.Errorf("expected %q, got %q", "use prefix abc", got)
	}
}
