// Package web embeds the browser client.
package web

import (
	"embed"
	"html/template"
)

//go:embed index.html
var files embed.FS

const Page = "index.html"

// Templates parses the embedded page for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, Page))
}

// PageData is what the page needs at render time.
type PageData struct {
	ServiceName string
	MapsAPIKey  string
	BackendURL  string
}
