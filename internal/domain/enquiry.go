package domain

// Enquiry is a contact form submission. The same shape carries the
// HTML-escaped copy shown on the confirmation view.
type Enquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
