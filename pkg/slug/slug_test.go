package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lapanasystem/lapana-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Pan de Campaña", "pan-de-campana"},
		{"Factura 3 Kg", "factura-3-kg"},
		{"  Medialunas   de Manteca  ", "medialunas-de-manteca"},
		{"Ñoquis & Pasta", "noquis-pasta"},
		{"CRIOLLITOS", "criollitos"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, slug.Make(c.name), "slug de %q", c.name)
	}
}
