package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases domain", "alice@EXAMPLE.COM", "alice@example.com"},
		{"preserves local part", "Alice.Smith@Example.com", "Alice.Smith@example.com"},
		{"trims whitespace", "  bob@example.com  ", "bob@example.com"},
		{"no at sign", "not-an-email", "not-an-email"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}
