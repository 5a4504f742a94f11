package resource

import "github.com/JaimeStill/tour-desk/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

// operations documents the REST routes of kind.
func operations(kind Kind) spec {
	id := openapi.PathParam("id", kind.Schema+" ID")
	body := openapi.RequestBodyJSON(kind.Schema+"Input", true)
	if kind.Attachment != nil {
		body = openapi.RequestBodyMultipart(kind.Schema+"Input", true)
	}

	s := spec{
		List: &openapi.Operation{
			Summary:     "List " + kind.Label,
			Description: "List " + kind.Label + " with client-side sort, day filter, and zero-based pagination",
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Zero-based page index", false),
				openapi.QueryParam("page_size", "integer", "Rows per page", false),
				openapi.QueryParam("sort", "string", "Sort field, - prefix for descending", false),
				openapi.QueryParam("filter", "string", "Day quick filter: today, yesterday, dayBeforeYesterday, clear", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON(kind.Label+" page", kind.Schema+"PageResult"),
				400: openapi.ResponseRef("BadRequest"),
				503: openapi.ResponseRef("Unavailable"),
			},
		},
		Find: &openapi.Operation{
			Summary:    "Find " + kind.Schema,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON(kind.Schema+" details", kind.Schema),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	if kind.ReadOnly {
		return s
	}

	s.Create = &openapi.Operation{
		Summary:     "Create " + kind.Schema,
		RequestBody: body,
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON(kind.Schema+" created", kind.Schema),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	}
	s.Update = &openapi.Operation{
		Summary:     "Update " + kind.Schema,
		Description: "Merge the supplied fields into the document",
		Parameters:  []*openapi.Parameter{id},
		RequestBody: body,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON(kind.Schema+" updated", kind.Schema),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
	s.Delete = &openapi.Operation{
		Summary:     "Delete " + kind.Schema,
		Description: "Remove the attachment, if any, then the document",
		Parameters:  []*openapi.Parameter{id},
		Responses: map[int]*openapi.Response{
			204: {Description: kind.Schema + " deleted"},
			404: openapi.ResponseRef("NotFound"),
			502: {Description: "Attachment removal failed; document kept"},
		},
	}
	return s
}

// Schemas returns the component schemas describing kind.
func Schemas(kind Kind) map[string]*openapi.Schema {
	props := map[string]*openapi.Schema{}
	var required []string

	for _, f := range kind.Fields {
		props[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}

	doc := map[string]*openapi.Schema{"id": {Type: "string"}}
	for k, v := range props {
		doc[k] = v
	}

	return map[string]*openapi.Schema{
		kind.Schema: {Type: "object", Properties: doc},
		kind.Schema + "Input": {
			Type:       "object",
			Properties: props,
			Required:   required,
		},
		kind.Schema + "PageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef(kind.Schema)},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}

func fieldSchema(f Field) *openapi.Schema {
	s := &openapi.Schema{Type: "string", Description: f.Label}
	switch f.Type {
	case Email:
		s.Format = "email"
	case URL:
		s.Format = "uri"
	case Date:
		s.Format = "date"
	case Timestamp:
		s.Format = "date-time"
	case Decimal:
		zero := 0.0
		s.Type = "number"
		s.Minimum = &zero
	}
	return s
}
