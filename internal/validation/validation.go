// Package validation decides whether a student record, or a single form
// field, satisfies the input rules of the records form.
//
// Every call returns a Result. A failing Result names at most one field
// and carries one human-readable message; checks run in a fixed order and
// the first failure wins:
//
//	name → studentNumber → address → phoneNumber → email
//
// The three contact fields are only checked when the record carries a
// detail block. The package holds no state: the same input always yields
// the same Result.
package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/aanand-mishra/student-records/internal/format"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Field tags, as used in form field names and in Result.Field.
const (
	FieldName          = "name"
	FieldStudentNumber = "studentNumber"
	FieldAddress       = "address"
	FieldPhoneNumber   = "phoneNumber"
	FieldEmail         = "email"
)

// Fields lists the known field tags in checking order.
var Fields = []string{FieldName, FieldStudentNumber, FieldAddress, FieldPhoneNumber, FieldEmail}

// whitespace is the Unicode whitespace set a browser's \s matches:
// RE2's \s alone is ASCII only and would let a no-break space through.
const whitespace = `\s\v\p{Z}\x{FEFF}`

// Patterns for the format checks. Values are trimmed before matching.
var (
	// One ASCII letter followed by exactly five digits, e.g. S12345.
	StudentNumberPattern = regexp.MustCompile(`^[A-Za-z][0-9]{5}$`)

	// Digits, hyphens and whitespace only. A lone "-" matches.
	PhoneNumberPattern = regexp.MustCompile(`^[0-9` + whitespace + `-]+$`)

	// Minimal shape check: local@domain.tld, no whitespace, one "@".
	EmailPattern = regexp.MustCompile(`^[^@` + whitespace + `]+@[^@` + whitespace + `]+\.[^@` + whitespace + `]+$`)
)

const (
	minNameLength    = 2
	minAddressLength = 5
)

// Messages returned in failing Results.
const (
	MsgStudentRequired = "student data required"

	MsgNameRequired = "name required"
	MsgNameTooShort = "name must be at least 2 characters"

	MsgStudentNumberRequired = "student number required"
	MsgStudentNumberFormat   = "student number must be 1 letter followed by 5 digits (e.g. S12345)"

	MsgAddressRequired = "address required"
	MsgAddressTooShort = "address must be at least 5 characters"

	MsgPhoneNumberRequired = "phone number required"
	MsgPhoneNumberFormat   = "invalid phone number format (e.g. 010-1234-5678)"

	MsgEmailRequired = "email required"
	MsgEmailFormat   = "invalid email format (e.g. user@example.com)"
)

// Result is the verdict of a validation call. When IsValid is true,
// Message and Field are empty.
type Result struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Valid returns the passing Result.
func Valid() Result {
	return Result{IsValid: true}
}

// Invalid returns a failing Result for field. field may be empty for
// record-level failures.
func Invalid(field, message string) Result {
	return Result{Message: message, Field: field}
}

type fieldValidator func(value string) Result

var validators = map[string]fieldValidator{
	FieldName:          validateName,
	FieldStudentNumber: validateStudentNumber,
	FieldAddress:       validateAddress,
	FieldPhoneNumber:   validatePhoneNumber,
	FieldEmail:         validateEmail,
}

// ValidateField checks a single form field. Unknown field names pass.
func ValidateField(field, value string) Result {
	validate, ok := validators[field]
	if !ok {
		return Valid()
	}
	return validate(value)
}

// ValidateStudent checks a whole record and reports the first failure.
// A nil record is itself a failure with no field set.
func ValidateStudent(student *types.StudentRequest) Result {
	if student == nil {
		return Invalid("", MsgStudentRequired)
	}

	if res := validateName(student.Name); !res.IsValid {
		return res
	}
	if res := validateStudentNumber(student.StudentNumber); !res.IsValid {
		return res
	}

	// Detail is optional here even though the form always sends it.
	if d := student.DetailRequest; d != nil {
		if res := validateAddress(d.Address); !res.IsValid {
			return res
		}
		if res := validatePhoneNumber(d.PhoneNumber); !res.IsValid {
			return res
		}
		if res := validateEmail(d.Email); !res.IsValid {
			return res
		}
	}

	return Valid()
}

func validateName(name string) Result {
	if format.IsEmpty(name) {
		return Invalid(FieldName, MsgNameRequired)
	}
	if utf8.RuneCountInString(format.SafeTrim(name)) < minNameLength {
		return Invalid(FieldName, MsgNameTooShort)
	}
	return Valid()
}

func validateStudentNumber(number string) Result {
	if format.IsEmpty(number) {
		return Invalid(FieldStudentNumber, MsgStudentNumberRequired)
	}
	if !StudentNumberPattern.MatchString(format.SafeTrim(number)) {
		return Invalid(FieldStudentNumber, MsgStudentNumberFormat)
	}
	return Valid()
}

func validateAddress(address string) Result {
	if format.IsEmpty(address) {
		return Invalid(FieldAddress, MsgAddressRequired)
	}
	if utf8.RuneCountInString(format.SafeTrim(address)) < minAddressLength {
		return Invalid(FieldAddress, MsgAddressTooShort)
	}
	return Valid()
}

func validatePhoneNumber(phone string) Result {
	if format.IsEmpty(phone) {
		return Invalid(FieldPhoneNumber, MsgPhoneNumberRequired)
	}
	if !PhoneNumberPattern.MatchString(format.SafeTrim(phone)) {
		return Invalid(FieldPhoneNumber, MsgPhoneNumberFormat)
	}
	return Valid()
}

func validateEmail(email string) Result {
	if format.IsEmpty(email) {
		return Invalid(FieldEmail, MsgEmailRequired)
	}
	if !EmailPattern.MatchString(format.SafeTrim(email)) {
		return Invalid(FieldEmail, MsgEmailFormat)
	}
	return Valid()
}
