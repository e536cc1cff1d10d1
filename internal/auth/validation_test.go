package auth

import (
	"strings"
	"testing"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"non-empty value", "alice", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			v.Required("username", tt.value)
			if v.HasErrors() != tt.hasError {
				t.Errorf("HasErrors() = %t, want %t", v.HasErrors(), tt.hasError)
			}
		})
	}
}

func TestValidatorMaxLength(t *testing.T) {
	v := NewValidator()
	v.MaxLength("password", strings.Repeat("x", 300), 255)
	if !v.HasErrors() {
		t.Fatal("expected a max-length error")
	}
	if got := v.FirstError(); !strings.Contains(got, "password") {
		t.Errorf("FirstError() = %q, want the field name included", got)
	}
}

func TestValidateCredentials(t *testing.T) {
	if v := validateCredentials("alice", "pw"); v.HasErrors() {
		t.Errorf("valid credentials rejected: %s", v.FirstError())
	}
	if v := validateCredentials("", "pw"); !v.HasErrors() {
		t.Error("blank username accepted")
	}
	if v := validateCredentials("alice", ""); !v.HasErrors() {
		t.Error("blank password accepted")
	}
}
