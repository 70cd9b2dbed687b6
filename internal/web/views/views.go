// Package views renders the records page. The components are written in
// page.templ; page_templ.go is generated from it.
package views

//go:generate templ generate

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/aanand-mishra/student-records/internal/ui"
	"github.com/aanand-mishra/student-records/internal/validation"
)

const (
	labelRegister = "Register student"
	labelUpdate   = "Update student"

	// listingColspan spans every column of a row, actions included.
	listingColspan = "7"

	fieldDateOfBirth = "dateOfBirth"
)

type formField struct {
	name  string
	label string
	kind  string
	// validate marks inputs the page checks as the user leaves them.
	validate bool
}

var fieldLabels = map[string]formField{
	validation.FieldName:          {label: "Name", kind: "text"},
	validation.FieldStudentNumber: {label: "Student number", kind: "text"},
	validation.FieldAddress:       {label: "Address", kind: "text"},
	validation.FieldPhoneNumber:   {label: "Phone number", kind: "tel"},
	validation.FieldEmail:         {label: "Email", kind: "email"},
}

// formFields lays the form out in checking order, so the first failing
// field is also the first one on screen. Date of birth comes last.
var formFields = buildFormFields()

func buildFormFields() []formField {
	fields := make([]formField, 0, len(validation.Fields)+1)
	for _, name := range validation.Fields {
		f := fieldLabels[name]
		f.name = name
		f.validate = true
		fields = append(fields, f)
	}
	return append(fields, formField{name: fieldDateOfBirth, label: "Date of birth", kind: "date"})
}

func fieldValue(f ui.FormInput, name string) string {
	switch name {
	case validation.FieldName:
		return f.Name
	case validation.FieldStudentNumber:
		return f.StudentNumber
	case validation.FieldAddress:
		return f.Address
	case validation.FieldPhoneNumber:
		return f.PhoneNumber
	case validation.FieldEmail:
		return f.Email
	case fieldDateOfBirth:
		return f.DateOfBirth
	default:
		return ""
	}
}

func submitLabel(v ui.View) string {
	if v.Editing() {
		return labelUpdate
	}
	return labelRegister
}

// rowURL is the form action for a per-row command.
func rowURL(id, action string) templ.SafeURL {
	return templ.SafeURL("/students/" + url.PathEscape(id) + "/" + action)
}
