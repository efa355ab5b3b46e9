package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict elimina todo el markup. bluemonday.Policy es seguro para uso concurrente.
var strict = bluemonday.StrictPolicy()

// Text limpia texto libre de usuario (comentarios, mensajes, descripciones).
// Quita tags y deja el texto plano sin entidades escapadas.
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Strings aplica Text a cada elemento y descarta los vacíos.
func Strings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := Text(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
