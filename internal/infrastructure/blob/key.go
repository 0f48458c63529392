// Package blob implementa el almacenamiento de imágenes de stock (S3 y compatibles, o disco local).
package blob

import (
	"net/http"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackStem reemplaza nombres que no conservan ningún carácter tras el saneado ("###", "🙂").
const (
	maxNameLen   = 120
	maxExtLen    = 10
	fallbackStem = "image"
)

// SanitizeFileName reduce el nombre original a un segmento ASCII seguro para claves de objeto:
// quita tildes ("Ñandú" -> "Nandu"), descarta directorios enviados por el navegador y reemplaza
// cualquier carácter fuera de [A-Za-z0-9._-]. Nunca falla: si no queda nada se usa "image" + extensión.
func SanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		return fallbackStem
	}

	ext := path.Ext(base)
	stem := cleanSegment(strings.TrimSuffix(base, ext))
	ext = cleanExt(ext)

	if stem == "" {
		stem = fallbackStem
	}
	if len(stem)+len(ext) > maxNameLen {
		stem = stem[len(stem)-(maxNameLen-len(ext)):]
	}
	return stem + ext
}

func cleanSegment(s string) string {
	// El Transformer encadenado guarda estado: uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if ascii, _, err := transform.String(t, s); err == nil {
		s = ascii
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._-")
}

// cleanExt conserva ".ext" sólo si, sin tildes, es alfanumérica ASCII y corta.
func cleanExt(ext string) string {
	e := cleanSegment(strings.TrimPrefix(ext, "."))
	if e == "" || len(e) > maxExtLen {
		return ""
	}
	for _, r := range e {
		if r >= unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return ""
		}
	}
	return "." + e
}

// NewObjectKey genera la clave final: prefijo aleatorio + "_" + nombre saneado,
// de modo que dos subidas con el mismo nombre nunca se pisan.
func NewObjectKey(fileName string) string {
	return uuid.NewString() + "_" + SanitizeFileName(fileName)
}

var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// ResolveContentType usa el Content-Type declarado en la parte multipart; si no hay uno útil,
// lo deduce por extensión y, en último caso, por los primeros bytes (sniff).
func ResolveContentType(fileName, declared string, sniff []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if ct, ok := contentTypeByExt[strings.ToLower(path.Ext(fileName))]; ok {
		return ct
	}
	if len(sniff) > 0 {
		return http.DetectContentType(sniff)
	}
	return "application/octet-stream"
}

func applyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}
