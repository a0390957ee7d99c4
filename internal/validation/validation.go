package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Package validation provides reusable field validators shared by all entity
// services. Validators accumulate human-readable messages instead of failing
// fast, so a single request reports every invalid field at once.

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Brazilian mobile numbers, e.g. (11) 91234-5678, with optional punctuation.
	phoneRegex = regexp.MustCompile(`^\(?\d{2}\)?[\s-]?\d{4,5}-?\d{4}$`)
)

// Errors is an accumulating list of validation messages.
type Errors []string

// Add appends a message to the list.
func (e *Errors) Add(msg string) {
	*e = append(*e, msg)
}

// Name checks a person/entity name field: required, non-blank, at most 100
// characters.
func Name(field, value string, errs *Errors) {
	if strings.TrimSpace(value) == "" {
		errs.Add(required(field))
		return
	}
	if len(value) > 100 {
		errs.Add(fmt.Sprintf("field %q must be at most 100 characters.", field))
	}
}

// Email checks an email field: required, local@domain.tld shape, at most 150
// characters.
func Email(field, value string, errs *Errors) {
	if strings.TrimSpace(value) == "" {
		errs.Add(required(field))
		return
	}
	if !emailRegex.MatchString(value) {
		errs.Add(fmt.Sprintf("field %q must be a valid email address.", field))
		return
	}
	if len(value) > 150 {
		errs.Add(fmt.Sprintf("field %q must be at most 150 characters.", field))
	}
}

// Phone checks a mobile number field: required, Brazilian mobile shape, at
// most 20 characters.
func Phone(field, value string, errs *Errors) {
	if strings.TrimSpace(value) == "" {
		errs.Add(required(field))
		return
	}
	if !phoneRegex.MatchString(value) {
		errs.Add(fmt.Sprintf("field %q must be a valid mobile number (e.g. (11) 91234-5678).", field))
		return
	}
	if len(value) > 20 {
		errs.Add(fmt.Sprintf("field %q must be at most 20 characters.", field))
	}
}

// Password checks a password field: required, between 6 and 50 characters.
func Password(field, value string, errs *Errors) {
	if strings.TrimSpace(value) == "" {
		errs.Add(required(field))
		return
	}
	if len(value) < 6 {
		errs.Add(fmt.Sprintf("field %q must be at least 6 characters.", field))
		return
	}
	if len(value) > 50 {
		errs.Add(fmt.Sprintf("field %q must be at most 50 characters.", field))
	}
}

// Date checks a date field already decoded into a time.Time: required
// (non-zero).
func Date(field string, value time.Time, errs *Errors) {
	if value.IsZero() {
		errs.Add(dateInvalid(field))
	}
}

// DateString checks a textual date field, as received in partial update
// payloads: required and parseable as RFC 3339 or a plain calendar date.
func DateString(field, value string, errs *Errors) {
	if strings.TrimSpace(value) == "" {
		errs.Add(dateInvalid(field))
		return
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return
	}
	errs.Add(dateInvalid(field))
}

func required(field string) string {
	return fmt.Sprintf("field %q is required.", field)
}

func dateInvalid(field string) string {
	return fmt.Sprintf("field %q is required and must be a valid date.", field)
}
