package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookly/shared/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Studio Bela", want: "studio-bela"},
		{name: "diacritics", in: "Barbearia São João", want: "barbearia-sao-joao"},
		{name: "punctuation collapses", in: "  Nails & Co.  ", want: "nails-co"},
		{name: "digits kept", in: "Salon 24/7", want: "salon-24-7"},
		{name: "nothing usable", in: "¡¿!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.in))
		})
	}

	assert.LessOrEqual(t, len(slug.Make(strings.Repeat("a", 100))), 60)
}
