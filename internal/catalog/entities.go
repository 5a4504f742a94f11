package catalog

import "time"

// Typed views of catalog documents, used by seeding and tests.

type Booking struct {
	ID            string    `json:"id,omitempty"`
	TravellerName string    `json:"travellerName"`
	TravelPlace   string    `json:"travelPlace"`
	StartDate     string    `json:"startDate"`
	ReturnDate    string    `json:"returnDate"`
	Timestamp     time.Time `json:"timestamp"`
}

type Service struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

type Package struct {
	ID      string  `json:"id,omitempty"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Price   float64 `json:"price"`
	Image   string  `json:"image,omitempty"`
}

type Testimonial struct {
	ID         string `json:"id,omitempty"`
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

type SubscribedUser struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}

type ContactFormEntry struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

type ContactDetails struct {
	ID               string `json:"id,omitempty"`
	Address          string `json:"address"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AdditionalNumber string `json:"additionalNumber,omitempty"`
}
