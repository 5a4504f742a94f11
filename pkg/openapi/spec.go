package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// NewSpec creates an empty OpenAPI 3.1 document.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    "3.1.0",
		Info:       &Info{Title: title, Version: version},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// SetDescription sets the API description.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddServer appends a server URL. Empty URLs are ignored.
func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddOperation attaches op to path under the given HTTP method.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	if op == nil {
		return
	}
	if s.Paths[path] == nil {
		s.Paths[path] = &PathItem{}
	}

	switch method {
	case http.MethodGet:
		s.Paths[path].Get = op
	case http.MethodPost:
		s.Paths[path].Post = op
	case http.MethodPut:
		s.Paths[path].Put = op
	case http.MethodDelete:
		s.Paths[path].Delete = op
	}
}

// NewComponents returns the shared schemas and error responses.
func NewComponents() *Components {
	errorBody := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Error")},
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Zero-based page index"},
					"page_size": {Type: "integer"},
					"sort":      {Type: "string", Description: "Comma-separated fields, - prefix for descending"},
					"filter":    {Type: "string", Enum: []string{"today", "yesterday", "dayBeforeYesterday", "clear"}},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   {Description: "Invalid request", Content: errorBody},
			"NotFound":     {Description: "Resource not found", Content: errorBody},
			"Conflict":     {Description: "Request conflicts with current state", Content: errorBody},
			"Unavailable":  {Description: "Backing store unavailable", Content: errorBody},
			"Unauthorized": {Description: "Missing or invalid credentials", Content: errorBody},
		},
	}
}

// AddSchemas merges schemas into the component set, replacing same-named entries.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// MarshalJSON renders the spec as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// WriteJSON renders the spec and writes it to path, creating parent directories.
func WriteJSON(spec *Spec, path string) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create spec directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ServeSpec returns a handler that writes the pre-rendered spec.
func ServeSpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
