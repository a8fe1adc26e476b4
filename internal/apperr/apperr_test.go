package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("Error 1451: Cannot delete or update a parent row")
	wrapped := fmt.Errorf("delete disaster: %w", Wrap(Conflict, "disaster is still referenced", cause))

	if got := KindOf(wrapped); got != Conflict {
		t.Errorf("expected conflict, got %s", got)
	}
	if got := MessageOf(wrapped); got != "disaster is still referenced" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	err := errors.New("boom")
	if got := KindOf(err); got != Internal {
		t.Errorf("expected internal, got %s", got)
	}
	if got := MessageOf(err); got != "internal error" {
		t.Errorf("expected generic message, got %q", got)
	}
	if got := KindOf(nil); got != Internal {
		t.Errorf("expected internal for nil, got %s", got)
	}
}

func TestError_String(t *testing.T) {
	err := Newf(NotFound, "disaster %s not found", "D9")
	if err.Error() != "not_found: disaster D9 not found" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}
