package common

import (
	"errors"
	"testing"
)

func TestValidation(t *testing.T) {
	v := Valid(42)
	if !v.Valid || v.Value != 42 || v.Err() != nil {
		t.Errorf("Valid(42) = %+v", v)
	}

	bad := Invalid[int]("value %q is not a number", "x")
	if bad.Valid {
		t.Error("Invalid() reports valid")
	}
	if bad.Message != `value "x" is not a number` {
		t.Errorf("Message = %q", bad.Message)
	}
	if err := bad.Err(); err == nil || err.Error() != bad.Message {
		t.Errorf("Err() = %v, want message", err)
	}
}

func TestCheck(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		c    Check
		ok   bool
		str  string
	}{
		{"pass", Pass, true, "passed"},
		{"fail", Fail, false, "failed"},
		{"checked true", Checked(true), true, "passed"},
		{"checked false", Checked(false), false, "failed"},
		{"error", CheckError(boom), false, "error(boom)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Ok(); got != tt.ok {
				t.Errorf("Ok() = %v, want %v", got, tt.ok)
			}
			if got := tt.c.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
	if c := CheckError(boom); c.Success || !errors.Is(c.Err, boom) {
		t.Errorf("CheckError() = %+v", c)
	}
}

func TestFind(t *testing.T) {
	if f := Found("x"); f.Status != FindStatusFound || f.Data != "x" {
		t.Errorf("Found() = %+v", f)
	}
	if f := NotFound[string](); f.Status != FindStatusNotFound || f.Err != nil {
		t.Errorf("NotFound() = %+v", f)
	}
	boom := errors.New("boom")
	if f := FindFailed[int](boom); f.Status != FindStatusError || !errors.Is(f.Err, boom) {
		t.Errorf("FindFailed() = %+v", f)
	}
	for s, want := range map[FindStatus]string{FindStatusFound: "found", FindStatusNotFound: "not-found", FindStatusError: "error", 7: "FindStatus(7)"} {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
