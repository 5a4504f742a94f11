// Package scalar serves the interactive API reference for the OpenAPI
// document published by the api module.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/tour-desk/pkg/module"
)

//go:embed index.html
var indexHTML string

var index = template.Must(template.New("index").Parse(indexHTML))

// Page holds the values rendered into the reference page.
type Page struct {
	Title   string
	SpecURL string
}

// Handler renders the reference page once and serves it on every request.
func Handler(page Page) (http.HandlerFunc, error) {
	var buf bytes.Buffer
	if err := index.Execute(&buf, page); err != nil {
		return nil, err
	}
	body := buf.Bytes()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}, nil
}

// NewModule mounts the reference page at prefix.
func NewModule(prefix string, page Page) (*module.Module, error) {
	h, err := Handler(page)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h)

	return module.New(prefix, mux), nil
}
