// Package enquiry validates and sanitises contact form submissions.
package enquiry

import (
	"html"
	"regexp"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

const (
	MsgNameRequired    = "Name is required"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Invalid email format"
	MsgSubjectRequired = "Subject is required"
	MsgMessageRequired = "Message is required"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is either valid (Sanitized set, no Errors) or invalid (Errors set).
// Input always holds the trimmed, unescaped values for redisplay.
type Result struct {
	Input     domain.Enquiry
	Sanitized *domain.Enquiry
	Errors    []FieldError
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Messages returns the error messages in field order.
func (r Result) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Message
	}
	return out
}

// Validate trims every field, collects all rule violations and, when there
// are none, returns the HTML-escaped copy.
func Validate(sub domain.Enquiry) Result {
	in := domain.Enquiry{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Subject: strings.TrimSpace(sub.Subject),
		Message: strings.TrimSpace(sub.Message),
	}
	res := Result{Input: in}

	if in.Name == "" {
		res.Errors = append(res.Errors, FieldError{Field: "name", Message: MsgNameRequired})
	}
	switch {
	case in.Email == "":
		res.Errors = append(res.Errors, FieldError{Field: "email", Message: MsgEmailRequired})
	case !ValidEmail(in.Email):
		res.Errors = append(res.Errors, FieldError{Field: "email", Message: MsgEmailInvalid})
	}
	if in.Subject == "" {
		res.Errors = append(res.Errors, FieldError{Field: "subject", Message: MsgSubjectRequired})
	}
	if in.Message == "" {
		res.Errors = append(res.Errors, FieldError{Field: "message", Message: MsgMessageRequired})
	}

	if res.Valid() {
		sanitized := Sanitize(in)
		res.Sanitized = &sanitized
	}
	return res
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Sanitize escapes & < > " ' in every field. It is applied exactly once to
// raw input; escaped output must not be passed back in.
func Sanitize(e domain.Enquiry) domain.Enquiry {
	return domain.Enquiry{
		Name:    html.EscapeString(e.Name),
		Email:   html.EscapeString(e.Email),
		Subject: html.EscapeString(e.Subject),
		Message: html.EscapeString(e.Message),
	}
}
