package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/siteworkhq/sitework/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *apperr.Error
		want int
	}{
		{apperr.Unauthenticated("x"), http.StatusUnauthorized},
		{apperr.Forbidden("x"), http.StatusForbidden},
		{apperr.NotFound("x"), http.StatusNotFound},
		{apperr.Validation("x"), http.StatusBadRequest},
		{apperr.Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Errorf("%s: HTTPStatus() = %d, want %d", tt.err.Code, got, tt.want)
		}
	}
}

func TestFrom_PreservesOperationalErrors(t *testing.T) {
	orig := apperr.Forbidden("no access to this tenant")
	got := apperr.From(fmt.Errorf("guard: %w", orig))
	if got != orig {
		t.Errorf("From should unwrap to the original *Error, got %v", got)
	}
}

func TestFrom_MasksUnclassifiedErrors(t *testing.T) {
	leaky := errors.New("UNIQUE constraint failed: share_links.token_hash")
	got := apperr.From(leaky)

	if got.Kind != apperr.KindInternal {
		t.Errorf("Kind = %v, want KindInternal", got.Kind)
	}
	if strings.Contains(got.Message, "token_hash") {
		t.Errorf("masked message leaks internals: %q", got.Message)
	}
	if got.Message != "internal error" {
		t.Errorf("Message = %q, want generic", got.Message)
	}
	// The original is preserved for server-side logging.
	if !errors.Is(got, leaky) {
		t.Error("original error should be wrapped for logging")
	}
}
