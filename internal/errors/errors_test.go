package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "message only",
			err:  NotFound("business not found"),
			want: "business not found",
		},
		{
			name: "message with cause",
			err:  Wrap(errors.New("dial tcp: refused"), ErrCodeInternal, "query failed"),
			want: "query failed: dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, ErrCodeInternal, "wrapped")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestWrap_NilError(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "message") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
	if Wrapf(nil, ErrCodeInternal, "message %d", 1) != nil {
		t.Error("Wrapf(nil, ...) should return nil")
	}
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"not found", NotFound("missing"), IsNotFound},
		{"conflict", Conflict("duplicate"), IsConflict},
		{"validation", Validation("bad input"), IsValidation},
		{"validation field", ValidationField("code", "bad"), IsValidation},
		{"foreign key", ForeignKey("in use"), IsForeignKey},
		{"unauthorized", Unauthorized("session expired"), IsUnauthorized},
		{"forbidden", Forbidden("admins only"), IsForbidden},
		{"upstream", Upstream("backend rejected request"), IsUpstream},
		{"internal", Internal("boom"), IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("predicate should match %v", tt.err)
			}
			// Predicates see through wrapping.
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !tt.pred(wrapped) {
				t.Errorf("predicate should match wrapped %v", wrapped)
			}
		})
	}

	if IsNotFound(errors.New("plain")) {
		t.Error("plain errors should not match IsNotFound")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(Conflict("dup")); got != ErrCodeConflict {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeConflict)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestGetField(t *testing.T) {
	if got := GetField(ValidationField("email", "taken")); got != "email" {
		t.Errorf("GetField() = %q, want %q", got, "email")
	}
	if got := GetField(Validation("no field")); got != "" {
		t.Errorf("GetField() = %q, want empty", got)
	}
}
