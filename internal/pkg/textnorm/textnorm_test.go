package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Trims and collapses spaces", "  Juan   Pérez ", "Juan Pérez"},
		{"Composes combining accents", "Ba\u0301varo", "B\u00e1varo"},
		{"Blank stays blank", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanMultiline(t *testing.T) {
	assert.Equal(t, "Hola,\nnecesito una silla?", CleanMultiline("  Hola,  \r\n  necesito   una silla?  "))
}

func TestCleanPtr(t *testing.T) {
	assert.Nil(t, CleanPtr(nil))

	blank := "   "
	assert.Nil(t, CleanPtr(&blank))

	v := " baby seat "
	got := CleanPtr(&v)
	if assert.NotNil(t, got) {
		assert.Equal(t, "baby seat", *got)
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", Email("  Ana@Example.COM "))
}
