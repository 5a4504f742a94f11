// Package resource implements the generic CRUD controller shared by every
// dashboard collection: a validating repository over one document
// collection, the attachment lifecycle for image-bearing kinds, and the
// delete cascade that ties the two together.
package resource

// FieldType selects validation and normalization for a field.
type FieldType string

const (
	Text      FieldType = "text"
	LongText  FieldType = "longtext"
	Email     FieldType = "email"
	Phone     FieldType = "phone"
	URL       FieldType = "url"
	Decimal   FieldType = "decimal"
	Date      FieldType = "date"
	Timestamp FieldType = "timestamp"
)

// Field describes one document field.
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// Attachment names the field holding an attachment URL and the object key
// prefix uploads are stored under.
type Attachment struct {
	Field  string `json:"field"`
	Prefix string `json:"prefix"`
}

// Kind binds a collection to its shape and screen behavior.
type Kind struct {
	// Name is the route segment, e.g. "services".
	Name       string `json:"name"`
	Label      string `json:"label"`
	Collection string `json:"collection"`

	// Schema is the singular type name used in API documentation.
	Schema string `json:"schema"`

	Fields     []Field     `json:"fields"`
	TitleField string      `json:"titleField"`
	Attachment *Attachment `json:"attachment,omitempty"`

	// OrderBy requests a store-side ordering for List.
	OrderBy    string `json:"orderBy,omitempty"`
	Descending bool   `json:"descending,omitempty"`

	// DefaultSort is the initial client-side sort field of a screen.
	DefaultSort string `json:"defaultSort,omitempty"`

	// DayField enables the day quick filters over a time-valued field.
	DayField string `json:"dayField,omitempty"`

	ReadOnly  bool `json:"readOnly,omitempty"`
	Singleton bool `json:"singleton,omitempty"`
}

// Field returns the named field definition.
func (k Kind) Field(name string) (Field, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (k Kind) FieldNames() []string {
	names := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		names[i] = f.Name
	}
	return names
}

// Blank returns an empty value for every field, used to open a create form.
func (k Kind) Blank() map[string]any {
	blank := make(map[string]any, len(k.Fields))
	for _, f := range k.Fields {
		blank[f.Name] = ""
	}
	return blank
}
