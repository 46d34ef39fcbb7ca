package templates

import (
	"embed"
	"html/template"

	"github.com/samber/lo"
)

//go:embed *.html
var htmlFiles embed.FS

var Home = ensure("home.html")

func ensure(name string) *template.Template {
	tmpls := lo.Must(template.New("all").ParseFS(htmlFiles, "*.html"))
	tmpl := tmpls.Lookup(name)
	if tmpl == nil {
		panic("template " + name + " not found")
	}
	return tmpl
}
