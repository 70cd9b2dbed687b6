// Package response provides helpers for writing consistent JSON HTTP
// responses from the records API.
//
// Success responses may return any JSON shape (a student, a list…).
// Error responses always look like:
//
//	{ "status": "error", "error": "name required", "field": "name" }
//
// The API client in internal/client decodes this same envelope, so the
// two sides agree on where the human-readable message lives.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-records/internal/validation"
)

// Response is the standard envelope returned for error cases.
// Field is set only for validation failures that name a form field.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
}

// StatusError is the status of every error envelope.
const StatusError = "error"

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (DB failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// InvalidRecord converts a failing validation.Result into a Response,
// keeping the name of the offending field.
func InvalidRecord(res validation.Result) Response {
	return Response{
		Status: StatusError,
		Error:  res.Message,
		Field:  res.Field,
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. We convert each to a plain English sentence and join them
// with ", ". When exactly one field failed, its JSON name is reported in
// Field so the front end can focus it.
//
// Example output:
//
//	{ "status": "error", "error": "field address must be at most 200 characters", "field": "address" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "max":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s characters", e.Field(), e.Param()))
		case "datetime":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a date formatted as %s", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	resp := Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
	if len(errs) == 1 {
		resp.Field = errs[0].Field()
	}
	return resp
}
