// Package slug genera identificadores URL-safe a partir de nombres de producto.
// Normaliza acentos (NFD + eliminación de marcas diacríticas) para que
// "Pan de Campaña" → "pan-de-campana".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make convierte un nombre en slug: minúsculas, sin acentos, separado por guiones.
func Make(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, name)
	if err != nil {
		ascii = name
	}

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
