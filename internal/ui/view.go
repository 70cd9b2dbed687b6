package ui

import (
	"github.com/aanand-mishra/student-records/internal/format"
	"github.com/aanand-mishra/student-records/internal/types"
)

// FormInput is the raw content of the records form.
type FormInput struct {
	Name          string
	StudentNumber string
	Address       string
	PhoneNumber   string
	Email         string
	DateOfBirth   string
}

// Record builds a fresh write-shape record from the form. Values are
// trimmed; the detail block is always present and an empty date of birth
// becomes null.
func (f FormInput) Record() *types.StudentRequest {
	detail := &types.Detail{
		Address:     format.SafeTrim(f.Address),
		PhoneNumber: format.SafeTrim(f.PhoneNumber),
		Email:       format.SafeTrim(f.Email),
	}
	if dob := format.SafeTrim(f.DateOfBirth); dob != "" {
		detail.DateOfBirth = &dob
	}

	return &types.StudentRequest{
		Name:          format.SafeTrim(f.Name),
		StudentNumber: format.SafeTrim(f.StudentNumber),
		DetailRequest: detail,
	}
}

// FormFromStudent fills the form from a record read back from the API.
func FormFromStudent(s types.Student) FormInput {
	req := s.Request()
	f := FormInput{
		Name:          req.Name,
		StudentNumber: req.StudentNumber,
	}
	if d := req.DetailRequest; d != nil {
		f.Address = d.Address
		f.PhoneNumber = d.PhoneNumber
		f.Email = d.Email
		if d.DateOfBirth != nil {
			f.DateOfBirth = *d.DateOfBirth
		}
	}
	return f
}

// MessageKind tells the renderer how to style a Message.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageSuccess
	MessageError
)

// Message is the banner shown above the form.
type Message struct {
	Kind MessageKind
	Text string
}

func successMessage(text string) Message { return Message{Kind: MessageSuccess, Text: text} }

func errorMessage(text string) Message { return Message{Kind: MessageError, Text: text} }

// Row is one line of the listing, already formatted for display.
type Row struct {
	ID            string
	Name          string
	StudentNumber string
	Address       string
	PhoneNumber   string
	Email         string
	DateOfBirth   string
}

// View is everything the page needs to render.
type View struct {
	Form      FormInput
	EditingID string
	Message   Message
	// FocusField is the form field to focus, or "".
	FocusField string
	Rows       []Row
	// ListError is set when the listing could not be loaded; Rows is nil.
	ListError string
}

// Editing reports whether the form is in edit mode.
func (v View) Editing() bool {
	return v.EditingID != ""
}

// Empty reports whether the listing loaded and has no rows.
func (v View) Empty() bool {
	return v.ListError == "" && len(v.Rows) == 0
}
