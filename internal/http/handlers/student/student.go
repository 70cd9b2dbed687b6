// Package student contains all HTTP handlers related to the Student
// resource of the records API.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// To inject dependencies we use a factory function that accepts the
// storage and returns a function with the exact signature the router
// needs:
//
//	router.HandleFunc("POST /api/students", student.New(storage))
//
// Routes registers all five handlers on a mux in one call.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-records/internal/logging"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/aanand-mishra/student-records/internal/validation"
)

// validate checks the structural validate:"..." tags on request bodies.
// Field names in its errors are the JSON names, matching the form fields.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Routes registers the records API on mux.
//
//	POST   /api/students        → create a new student
//	GET    /api/students        → list all students
//	GET    /api/students/{id}   → get one student by ID
//	PUT    /api/students/{id}   → update a student
//	DELETE /api/students/{id}   → delete a student
func Routes(mux *http.ServeMux, s storage.Storage) {
	mux.HandleFunc("POST /api/students", New(s))
	mux.HandleFunc("GET /api/students", GetList(s))
	mux.HandleFunc("GET /api/students/{id}", GetByID(s))
	mux.HandleFunc("PUT /api/students/{id}", Update(s))
	mux.HandleFunc("DELETE /api/students/{id}", Delete(s))
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Kim", "studentNumber": "S12345",
//	  "detailRequest": { "address": "Seoul City", "phoneNumber": "010-1234-5678",
//	                     "email": "kim@example.com", "dateOfBirth": null } }
//
// Success response (201 Created): the stored student (read shape).
//
// Error responses:
//
//	400 Bad Request : empty body, malformed JSON, or failed validation
//	500 Internal    : database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())
		log.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		lastID, err := storage.CreateStudent(r.Context(), student)
		if err != nil {
			log.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		created, err := storage.GetStudentByID(r.Context(), lastID)
		if err != nil {
			writeStorageError(w, r, err)
			return
		}

		log.Info("student created", slog.Int64("id", lastID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Error responses:
//
//	400 Bad Request : id is not a valid integer
//	404 Not Found   : no such student
//	500 Internal    : database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		logging.FromContext(r.Context()).Info("getting a student", slog.Int64("id", id))

		student, err := storage.GetStudentByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns a JSON array of all students, [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())
		log.Info("getting all students")

		students, err := storage.GetStudents(r.Context())
		if err != nil {
			log.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces ALL fields of an existing student; a body without
// detailRequest removes the stored detail block.
//
// Success response (200 OK): the updated student.
//
// Error responses:
//
//	400 Bad Request : invalid id, empty body, or validation failure
//	404 Not Found   : no such student
//	500 Internal    : database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		log := logging.FromContext(r.Context()).With(slog.Int64("id", id))
		log.Info("updating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		updated, err := storage.UpdateStudentByID(r.Context(), id, student)
		if err != nil {
			writeStorageError(w, r, err)
			return
		}

		log.Info("student updated")
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		log := logging.FromContext(r.Context()).With(slog.Int64("id", id))
		log.Info("deleting a student")

		if err := storage.DeleteStudentByID(r.Context(), id); err != nil {
			writeStorageError(w, r, err)
			return
		}

		log.Info("student deleted")
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// decodeStudent reads and validates a write-shape body. On failure it has
// already written the 400 response.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.StudentRequest, bool) {
	var student types.StudentRequest

	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return student, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return student, false
	}

	// The same rules the form applies, so a client that skips them still
	// gets the same message and field back.
	if res := validation.ValidateStudent(&student); !res.IsValid {
		response.WriteJSON(w, http.StatusBadRequest, response.InvalidRecord(res))
		return student, false
	}

	if err := validate.Struct(student); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return student, false
	}

	return student, true
}

// pathID parses the {id} path segment. On failure it has already written
// the 400 response.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return id, true
}

func writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}
	logging.FromContext(r.Context()).Error("storage error", slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
