package models

import "fmt"

// ApiError is the normalized shape every failed request collapses into.
// Status 0 means the request never produced a response (network failure
// or timeout).
type ApiError struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Code    string              `json:"code,omitempty"`
}

func (e *ApiError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// FieldError returns the first server-reported error for a form field,
// or "" when the field is clean.
func (e *ApiError) FieldError(field string) string {
	if msgs, ok := e.Errors[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ValidationError is a client-local rejection raised before any network
// call is made. It is shown inline and never sent to the server.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
