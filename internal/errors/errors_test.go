package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestWrap_KeepsCode(t *testing.T) {
	base := IOError("cannot open output", fs.ErrPermission)
	wrapped := Wrap(base, "run failed")

	if GetCode(wrapped) != CodeIO {
		t.Errorf("expected %s, got %s", CodeIO, GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, fs.ErrPermission) {
		t.Error("wrapped error should still match its root cause")
	}
	if Wrap(nil, "nothing") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	err := Wrapf(fmt.Errorf("boom"), "step %d", 3)
	if GetCode(err) != CodeInternalError {
		t.Errorf("expected %s, got %s", CodeInternalError, GetCode(err))
	}
	if err.Error() != "step 3: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestGetCode_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", Usage("need 3 arguments"))
	if GetCode(err) != CodeUsage {
		t.Errorf("expected %s, got %s", CodeUsage, GetCode(err))
	}
	if GetCode(fmt.Errorf("plain")) != "UNKNOWN" {
		t.Error("plain errors have no code")
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeParse, fmt.Errorf("bad float"))
	if GetCode(err) != CodeParse {
		t.Errorf("expected %s, got %s", CodeParse, GetCode(err))
	}
	if WithCode(CodeParse, nil) != nil {
		t.Error("WithCode(nil) should be nil")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"usage", Usage("missing args"), ExitUsage},
		{"wrapped usage", Wrap(Usage("missing args"), "cli"), ExitUsage},
		{"parse", ParseError("betaJ", fmt.Errorf("x")), ExitError},
		{"io", IOError("open", fmt.Errorf("x")), ExitError},
		{"plain", fmt.Errorf("x"), ExitError},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("%s: ExitCode = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDatabaseAndNotFound(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := DatabaseError("cannot connect", cause)
	if GetCode(err) != CodeDatabaseError || !stderrors.Is(err, cause) {
		t.Errorf("unexpected database error %v", err)
	}
	if got := NotFound("run abc").Error(); got != "run abc not found" {
		t.Errorf("unexpected message %q", got)
	}
}
