package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName normaliza un nombre de cliente para el enlace por nombre
// de interacciones antiguas: minusculas, sin acentos y con espacios
// colapsados. "Bar  Máfalda " y "bar mafalda" producen la misma clave.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}

	return strings.Join(strings.Fields(s), " ")
}
