package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.ExitCode() != 66 {
		t.Errorf("expected exit code 66, got %d", err.ExitCode())
	}
}

func TestAppError_NotFound_Success(t *testing.T) {
	err := NotFound("asset", "test.sh")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["resource"] != "asset" {
		t.Errorf("expected resource=asset, got %v", err.Details["resource"])
	}
	if err.Details["id"] != "test.sh" {
		t.Errorf("expected id=test.sh, got %v", err.Details["id"])
	}
	if !strings.Contains(err.Message, `"test.sh"`) {
		t.Errorf("expected message to quote the id, got %q", err.Message)
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("home directory", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_ErrorString(t *testing.T) {
	plain := CommandFailed("pacman -Sy", "exit status 1")
	if got := plain.Error(); got != "COMMAND_FAILED: pacman -Sy failed: exit status 1" {
		t.Errorf("unexpected error string %q", got)
	}

	wrapped := ExecutionFailed("pacman", fmt.Errorf("boom"))
	if !strings.Contains(wrapped.Error(), "(cause: boom)") {
		t.Errorf("expected cause in error string, got %q", wrapped.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Internal(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(ErrCodeInternal, "x").
		WithDetail("a", 1).
		WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", stderrors.New("x"), 1},
		{"invalid input", InvalidInput("package_manager", "unknown"), 64},
		{"execution failed", ExecutionFailed("x", nil), 127},
		{"canceled", Canceled(nil), 130},
		{"wrapped app error", fmt.Errorf("outer: %w", Storage("/tmp/x", nil)), 74},
		{"unknown code", New("SOMETHING", "x"), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Errorf("ExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected plain error not to be an AppError")
	}
	wrapped := fmt.Errorf("wrap: %w", MissingField("name"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected wrapped AppError to be found")
	}
	if appErr.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", appErr.Code)
	}
	if !IsAppError(wrapped) {
		t.Error("IsAppError should report true")
	}
}
