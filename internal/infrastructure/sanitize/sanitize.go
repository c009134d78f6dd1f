// Package sanitize remove markup perigoso dos textos livres dos pontos de coleta.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	plain = bluemonday.StrictPolicy()
	rich  = bluemonday.UGCPolicy()
)

// Text remove todo HTML; usado em nomes e campos curtos.
// Entidades são decodificadas de volta, o resultado é texto e não HTML.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(plain.Sanitize(s)))
}

// RichText mantém formatação básica e links seguros; usado na descrição
func RichText(s string) string {
	return strings.TrimSpace(rich.Sanitize(s))
}

// TextPtr aplica Text preservando nil
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}
