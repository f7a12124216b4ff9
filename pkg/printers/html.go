package printers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"tableflip.dev/diary/pkg/entry"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

var page = template.Must(template.New("entry").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, Helvetica, sans-serif; margin: 2em; }
h1 { font-size: 1.6em; }
img { max-width: 100%; margin: 0.5em 0; }
footer { color: #888; margin-top: 2em; }
</style>
</head>
<body>
{{- range .Images}}
<img src="data:{{.ContentType}};base64,{{.Data}}" alt="{{.Name}}">
{{- end}}
{{- if .ShowTitle}}
<h1>{{.Title}}</h1>
{{- end}}
<div class="description">{{.Description}}</div>
<footer>{{.Date}}</footer>
</body>
</html>
`))

type pageImage struct {
	Name        string
	ContentType template.URL
	Data        template.URL
}

type pageData struct {
	Title       string
	ShowTitle   bool
	Description template.HTML
	Date        string
	Images      []pageImage
}

// HTML renders the print page for e: images inline, the title when shown,
// the description from markdown, and the date as "Monday, 2 January".
func HTML(w io.Writer, e *entry.Entry) error {
	var desc bytes.Buffer
	if err := markdown.Convert([]byte(e.Description), &desc); err != nil {
		return fmt.Errorf("printers: render description: %w", err)
	}
	data := pageData{
		Title:       e.Title,
		ShowTitle:   e.ShowTitle && e.Title != "",
		Description: template.HTML(desc.String()),
		Date:        e.Date.Footer(),
	}
	for _, img := range e.Images {
		if !img.IsImage() {
			continue
		}
		data.Images = append(data.Images, pageImage{
			Name:        img.Name,
			ContentType: template.URL(img.ContentType),
			Data:        template.URL(base64.StdEncoding.EncodeToString(img.Data)),
		})
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("printers: render page: %w", err)
	}
	return nil
}
