package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain Text Unchanged", input: "milho verde", want: "milho verde"},
		{name: "Percent Is Literal", input: "100%", want: `100\%`},
		{name: "Underscore Is Literal", input: "saca_60kg", want: `saca\_60kg`},
		{name: "Backslash Escaped First", input: `a\%b`, want: `a\\\%b`},
		{name: "Empty Query", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLikePattern(tt.input))
		})
	}
}
