// Package web embarque les templates HTML et les fichiers statiques.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"scoop_storefront/internal/services"
)

//go:embed templates static
var files embed.FS

// Funcs : helpers disponibles dans tous les templates
var Funcs = template.FuncMap{
	"money": services.Money,
	"mul":   func(price float64, qty int) float64 { return price * float64(qty) },
	"date":  func(t time.Time) string { return t.Format("Jan 2, 2006") },
}

// Templates parse les pages et les partials
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html", "templates/partials/*.html")
}

// Static sert le contenu de static/ (js, css)
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
