package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/student-records/internal/logging"
	"github.com/aanand-mishra/student-records/internal/ui"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/aanand-mishra/student-records/internal/validation"
	"github.com/aanand-mishra/student-records/internal/web/views"
)

// actionContext detaches a user action from the browser connection: once
// started, a remote call runs to completion even if the user navigates
// away. Request-scoped values such as the request id are kept.
func actionContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, s.controller.Page(actionContext(r)))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := ui.FormInput{
		Name:          r.PostFormValue(validation.FieldName),
		StudentNumber: r.PostFormValue(validation.FieldStudentNumber),
		Address:       r.PostFormValue(validation.FieldAddress),
		PhoneNumber:   r.PostFormValue(validation.FieldPhoneNumber),
		Email:         r.PostFormValue(validation.FieldEmail),
		DateOfBirth:   r.PostFormValue("dateOfBirth"),
	}
	s.render(w, r, s.controller.Submit(actionContext(r), in))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, s.controller.Edit(actionContext(r), chi.URLParam(r, "id")))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, s.controller.Delete(actionContext(r), chi.URLParam(r, "id")))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, s.controller.Cancel(actionContext(r)))
}

// handleValidateField answers the per-field checks the page runs as the
// user leaves a field.
//
//	GET /api/validate?field=email&value=a@b
//	→ { "isValid": false, "message": "invalid email format (e.g. user@example.com)", "field": "email" }
func (s *Server) handleValidateField(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := validation.ValidateField(q.Get("field"), q.Get("value"))
	response.WriteJSON(w, http.StatusOK, res)
}

// render writes the page. Every outcome, failures included, is a normal
// page with a message, so the status is always 200.
func (s *Server) render(w http.ResponseWriter, r *http.Request, v ui.View) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Page(v).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("rendering page failed", slog.String("error", err.Error()))
	}
}
