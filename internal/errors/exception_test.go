package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWithDetail_KeepsIdentity(t *testing.T) {
	original := ErrInvalidOfferTerms.Message
	err := ErrInvalidOfferTerms.WithDetail("message too short")

	if !errors.Is(err, ErrInvalidOfferTerms) {
		t.Fatalf("expected detailed copy to match its sentinel")
	}
	if errors.Is(err, ErrInvalidTaskTerms) {
		t.Fatalf("expected no match against a different code")
	}
	if err.Message != original+": message too short" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if ErrInvalidOfferTerms.Message != original {
		t.Fatalf("sentinel must not be mutated")
	}
}

func TestWithDetail_Empty(t *testing.T) {
	err := ErrTaskNotOpen.WithDetail("")
	if err.Message != ErrTaskNotOpen.Message {
		t.Fatalf("expected unchanged message, got %q", err.Message)
	}
}

func TestKindAndStatus_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("accept offer: %w", ErrOfferNotPending)

	if KindOf(wrapped) != KindInvalidState {
		t.Fatalf("expected invalid_state, got %s", KindOf(wrapped))
	}
	if !IsKind(wrapped, KindInvalidState) {
		t.Fatalf("expected IsKind to match")
	}
	if StatusCode(wrapped) != http.StatusConflict {
		t.Fatalf("expected 409, got %d", StatusCode(wrapped))
	}
}

func TestKindAndStatus_Foreign(t *testing.T) {
	err := errors.New("disk on fire")

	if KindOf(err) != KindInternal {
		t.Fatalf("expected internal kind")
	}
	if StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
	if IsKind(nil, KindInternal) {
		t.Fatalf("nil error has no kind")
	}
}

func TestSentinelStatuses(t *testing.T) {
	cases := []struct {
		err    *Exception
		kind   Kind
		status int
	}{
		{ErrTaskNotFound, KindNotFound, http.StatusNotFound},
		{ErrUnauthorized, KindUnauthorized, http.StatusForbidden},
		{ErrDuplicateOffer, KindConflict, http.StatusConflict},
		{ErrInvalidOfferTerms, KindValidation, http.StatusUnprocessableEntity},
		{ErrTaskNotInProgress, KindInvalidState, http.StatusConflict},
	}

	for _, c := range cases {
		if c.err.Kind != c.kind || c.err.StatusCode != c.status {
			t.Errorf("%s: got %s/%d", c.err.Code, c.err.Kind, c.err.StatusCode)
		}
	}
}
