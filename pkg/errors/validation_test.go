package errors

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid slug", "aws-saa-c03", false},
		{"valid with dots", "az.104", false},
		{"valid with spaces", "Red Hat EX200", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://aws.amazon.com/certification/", false},
		{"http", "http://example.com", false},

		{"empty", "", true},
		{"javascript", "javascript:alert(1)", true},
		{"relative", "/training", true},
		{"quote injection", `https://example.com/"];`, true},
		{"newline", "https://example.com/\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
