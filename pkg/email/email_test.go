package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		first string
		last  string
	}{
		{"pavel.krasnov@corp.example", "Pavel", "Krasnov"},
		{"anna_smirnova@corp.example", "Anna", "Smirnova"},
		{"o-volkov@corp.example", "O", "Volkov"},
		{"ivan@corp.example", "Ivan", "User"},
		{"a.b.c@corp.example", "A", "C"},
		{"...", "User", "User"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			first, last := DeriveNameFromEmail(tt.email)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
