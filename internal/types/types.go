// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the front end, the API client, the handlers and storage can all import
// types without depending on each other.
package types

// StudentRequest is the WRITE shape of a student record: what the front
// end sends when creating or updating a student.
//
// The nested block is called "detailRequest" on the way in and "detail"
// on the way out (see Student). The asymmetry is part of the wire
// contract of the records API and must not be unified.
//
// Struct tags serve two purposes:
//
//  1. json:"..." : controls how the field appears when encoded to JSON.
//
//  2. validate:"...": structural rules checked by go-playground/validator
//     in the store handlers. The user-facing rules (required fields,
//     formats) live in the validation package; these tags only guard
//     the database against oversized or malformed values.
type StudentRequest struct {
	Name          string  `json:"name"          validate:"max=100"`
	StudentNumber string  `json:"studentNumber" validate:"max=20"`
	DetailRequest *Detail `json:"detailRequest,omitempty"`
}

// Student is the READ shape of a student record, as returned by the
// records API. ID is assigned by the store; the front end treats it as
// opaque.
type Student struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StudentNumber string  `json:"studentNumber"`
	Detail        *Detail `json:"detail,omitempty"`
}

// Detail is the optional contact block attached to a student.
//
// DateOfBirth is a pointer so that "no date" encodes as JSON null rather
// than an empty string. When present it is a calendar date: 2006-01-02.
type Detail struct {
	Address     string  `json:"address"     validate:"max=200"`
	PhoneNumber string  `json:"phoneNumber" validate:"max=30"`
	Email       string  `json:"email"       validate:"max=100"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

// Request converts a stored student back into the write shape. The front
// end uses it to prefill the edit form.
func (s Student) Request() StudentRequest {
	req := StudentRequest{
		Name:          s.Name,
		StudentNumber: s.StudentNumber,
	}
	if s.Detail != nil {
		d := *s.Detail
		req.DetailRequest = &d
	}
	return req
}
