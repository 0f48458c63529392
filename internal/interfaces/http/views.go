package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// NewViewsEngine motor de plantillas sobre las vistas embebidas en el binario.
func NewViewsEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("views embebidas: " + err.Error())
	}
	return html.NewFileSystem(nethttp.FS(sub), ".html")
}
