package catalog_test

import (
	"testing"

	"github.com/JaimeStill/tour-desk/internal/catalog"
	"github.com/JaimeStill/tour-desk/internal/resource"
	"github.com/JaimeStill/tour-desk/pkg/decode"
)

func TestKinds_Consistent(t *testing.T) {
	seen := map[string]bool{}

	for _, k := range catalog.Kinds() {
		t.Run(k.Name, func(t *testing.T) {
			if seen[k.Name] {
				t.Errorf("duplicate kind name %q", k.Name)
			}
			seen[k.Name] = true

			if k.Collection == "" || k.Schema == "" {
				t.Error("collection and schema required")
			}
			if _, ok := k.Field(k.TitleField); !ok {
				t.Errorf("title field %q not declared", k.TitleField)
			}
			if k.DefaultSort != "" {
				if _, ok := k.Field(k.DefaultSort); !ok {
					t.Errorf("default sort %q not declared", k.DefaultSort)
				}
			}
			if k.Attachment != nil {
				f, ok := k.Field(k.Attachment.Field)
				if !ok || f.Type != resource.URL {
					t.Errorf("attachment field %q must be a URL field", k.Attachment.Field)
				}
			}
			if k.DayField != "" {
				if f, ok := k.Field(k.DayField); !ok || f.Type != resource.Timestamp {
					t.Errorf("day field %q must be a timestamp field", k.DayField)
				}
			}
		})
	}
}

func TestAttachmentPrefixes(t *testing.T) {
	want := map[string]string{
		"services":     "services",
		"packages":     "packages",
		"testimonials": "testimonials",
	}

	for _, k := range catalog.Kinds() {
		prefix, expected := want[k.Name]
		switch {
		case expected && (k.Attachment == nil || k.Attachment.Prefix != prefix):
			t.Errorf("%s attachment = %+v, want prefix %q", k.Name, k.Attachment, prefix)
		case !expected && k.Attachment != nil:
			t.Errorf("%s should not carry an attachment", k.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	if k, ok := catalog.Lookup("contact-info"); !ok || !k.Singleton {
		t.Errorf("Lookup(contact-info) = %+v, %v", k, ok)
	}
	if _, ok := catalog.Lookup("invoices"); ok {
		t.Error("Lookup(invoices) should fail")
	}
	if k, _ := catalog.Lookup("bookings"); !k.ReadOnly || k.OrderBy != "timestamp" || !k.Descending {
		t.Errorf("bookings = %+v", k)
	}
}

func TestContactDetails_MatchesKindFields(t *testing.T) {
	fields, err := decode.ToMap(catalog.ContactDetails{
		Address:          "14 Harbour Road",
		Email:            "hello@example.com",
		Phone:            "+254 700 000 111",
		AdditionalNumber: "+254 700 000 222",
	})
	if err != nil {
		t.Fatalf("ToMap() error = %v", err)
	}

	for name := range fields {
		if _, ok := catalog.ContactInfo.Field(name); !ok {
			t.Errorf("entity field %q not declared on %s", name, catalog.ContactInfo.Name)
		}
	}
	if len(fields) != len(catalog.ContactInfo.Fields) {
		t.Errorf("entity fields = %d, want %d", len(fields), len(catalog.ContactInfo.Fields))
	}
}
