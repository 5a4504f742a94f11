// Package catalog declares the dashboard's resource kinds.
package catalog

import (
	"slices"

	"github.com/JaimeStill/tour-desk/internal/resource"
)

var Bookings = resource.Kind{
	Name:       "bookings",
	Label:      "Bookings",
	Schema:     "Booking",
	Collection: "bookings",
	Fields: []resource.Field{
		{Name: "travellerName", Label: "Traveller Name", Type: resource.Text, Required: true},
		{Name: "travelPlace", Label: "Travel Place", Type: resource.Text, Required: true},
		{Name: "startDate", Label: "Start Date", Type: resource.Date, Required: true},
		{Name: "returnDate", Label: "Return Date", Type: resource.Date, Required: true},
		{Name: "timestamp", Label: "Booked At", Type: resource.Timestamp, Required: true},
	},
	TitleField:  "travellerName",
	OrderBy:     "timestamp",
	Descending:  true,
	DefaultSort: "travellerName",
	DayField:    "timestamp",
	ReadOnly:    true,
}

var Services = resource.Kind{
	Name:       "services",
	Label:      "Services",
	Schema:     "Service",
	Collection: "services",
	Fields: []resource.Field{
		{Name: "title", Label: "Title", Type: resource.Text, Required: true},
		{Name: "content", Label: "Content", Type: resource.LongText, Required: true},
		{Name: "image", Label: "Image", Type: resource.URL},
	},
	TitleField:  "title",
	Attachment:  &resource.Attachment{Field: "image", Prefix: "services"},
	DefaultSort: "title",
}

var Packages = resource.Kind{
	Name:       "packages",
	Label:      "Packages",
	Schema:     "Package",
	Collection: "packages",
	Fields: []resource.Field{
		{Name: "title", Label: "Title", Type: resource.Text, Required: true},
		{Name: "content", Label: "Content", Type: resource.LongText, Required: true},
		{Name: "price", Label: "Price", Type: resource.Decimal, Required: true},
		{Name: "image", Label: "Image", Type: resource.URL},
	},
	TitleField:  "title",
	Attachment:  &resource.Attachment{Field: "image", Prefix: "packages"},
	DefaultSort: "title",
}

var Testimonials = resource.Kind{
	Name:       "testimonials",
	Label:      "Testimonials",
	Schema:     "Testimonial",
	Collection: "testimonials",
	Fields: []resource.Field{
		{Name: "authorName", Label: "Author Name", Type: resource.Text, Required: true},
		{Name: "content", Label: "Content", Type: resource.LongText, Required: true},
		{Name: "imageUrl", Label: "Image", Type: resource.URL},
	},
	TitleField:  "authorName",
	Attachment:  &resource.Attachment{Field: "imageUrl", Prefix: "testimonials"},
	DefaultSort: "authorName",
}

var Subscribers = resource.Kind{
	Name:       "subscribers",
	Label:      "Subscribed Users",
	Schema:     "SubscribedUser",
	Collection: "subscribedUsers",
	Fields: []resource.Field{
		{Name: "email", Label: "Email", Type: resource.Email, Required: true},
	},
	TitleField:  "email",
	DefaultSort: "email",
}

var Contacts = resource.Kind{
	Name:       "contacts",
	Label:      "Contact Form Entries",
	Schema:     "ContactFormEntry",
	Collection: "contacts",
	Fields: []resource.Field{
		{Name: "name", Label: "Name", Type: resource.Text, Required: true},
		{Name: "email", Label: "Email", Type: resource.Email, Required: true},
		{Name: "phone", Label: "Phone", Type: resource.Phone},
		{Name: "message", Label: "Message", Type: resource.LongText, Required: true},
	},
	TitleField:  "name",
	DefaultSort: "name",
}

var ContactInfo = resource.Kind{
	Name:       "contact-info",
	Label:      "Contact Info",
	Schema:     "ContactInfo",
	Collection: "contactInfo",
	Fields: []resource.Field{
		{Name: "address", Label: "Address", Type: resource.Text, Required: true},
		{Name: "email", Label: "Email", Type: resource.Email, Required: true},
		{Name: "phone", Label: "Phone", Type: resource.Phone, Required: true},
		{Name: "additionalNumber", Label: "Additional Number", Type: resource.Phone},
	},
	TitleField:  "address",
	DefaultSort: "address",
	Singleton:   true,
}

// Kinds lists every kind in dashboard navigation order.
func Kinds() []resource.Kind {
	return []resource.Kind{Bookings, Services, Packages, Testimonials, Subscribers, Contacts, ContactInfo}
}

// Lookup finds a kind by route name.
func Lookup(name string) (resource.Kind, bool) {
	kinds := Kinds()
	i := slices.IndexFunc(kinds, func(k resource.Kind) bool { return k.Name == name })
	if i < 0 {
		return resource.Kind{}, false
	}
	return kinds[i], true
}
