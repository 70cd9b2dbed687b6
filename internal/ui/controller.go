// Package ui turns user actions on the records page into calls to the
// validation engine and the records API, and builds the View the page is
// rendered from.
//
// A Controller owns the only mutable state of the front end: the id of
// the record being edited (empty when not editing) and the current form
// contents. The mutex guards that state only: remote calls run without
// it, so a slow records API never holds up other page loads.
package ui

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/aanand-mishra/student-records/internal/client"
	"github.com/aanand-mishra/student-records/internal/format"
	"github.com/aanand-mishra/student-records/internal/logging"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/validation"
)

// User-facing messages.
const (
	MsgCreated     = "student registered successfully"
	MsgUpdated     = "student updated successfully"
	MsgDeleted     = "student deleted successfully"
	MsgEmptyList   = "no students registered"
	MsgUnavailable = "the records service is unavailable, please try again"
)

// StudentAPI is the part of the records API the controller uses.
// *client.Client implements it.
type StudentAPI interface {
	ListStudents(ctx context.Context) ([]types.Student, error)
	GetStudent(ctx context.Context, id string) (types.Student, error)
	CreateStudent(ctx context.Context, req types.StudentRequest) (types.Student, error)
	UpdateStudent(ctx context.Context, id string, req types.StudentRequest) (types.Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

// Controller is the orchestration context for one records page.
type Controller struct {
	api StudentAPI

	mu        sync.Mutex
	editingID string
	form      FormInput
}

// NewController returns a controller that is not editing anything.
func NewController(api StudentAPI) *Controller {
	return &Controller{api: api}
}

// EditingID returns the id of the record being edited, or "".
func (c *Controller) EditingID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Page renders the current state without changing it.
func (c *Controller) Page(ctx context.Context) View {
	return c.view(ctx, Message{}, "")
}

// Submit validates the form and, when it passes, creates a student or
// updates the one being edited.
func (c *Controller) Submit(ctx context.Context, in FormInput) View {
	c.mu.Lock()
	c.form = in
	editingID := c.editingID
	c.mu.Unlock()

	log := logging.FromContext(ctx)
	record := in.Record()

	if res := validation.ValidateStudent(record); !res.IsValid {
		log.Debug("form rejected", slog.String("field", res.Field), slog.String("reason", res.Message))
		return c.view(ctx, errorMessage(res.Message), res.Field)
	}

	var (
		err error
		msg string
	)
	if editingID != "" {
		_, err = c.api.UpdateStudent(ctx, editingID, *record)
		msg = MsgUpdated
	} else {
		_, err = c.api.CreateStudent(ctx, *record)
		msg = MsgCreated
	}
	if err != nil {
		// The form and the editing flag stay as they are so the user can
		// fix the input and resubmit.
		log.Error("saving student failed", slog.String("editing_id", editingID), slog.String("error", err.Error()))
		return c.view(ctx, errorMessage(userMessage(err)), fieldOf(err))
	}

	log.Info("student saved", slog.String("editing_id", editingID))
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
	return c.view(ctx, successMessage(msg), "")
}

// Edit loads a student into the form and enters edit mode.
func (c *Controller) Edit(ctx context.Context, id string) View {
	student, err := c.api.GetStudent(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Error("loading student failed", slog.String("id", id), slog.String("error", err.Error()))
		return c.view(ctx, errorMessage(userMessage(err)), "")
	}

	c.mu.Lock()
	c.form = FormFromStudent(student)
	c.editingID = id
	c.mu.Unlock()
	return c.view(ctx, Message{}, validation.FieldName)
}

// Cancel leaves edit mode and clears the form.
func (c *Controller) Cancel(ctx context.Context) View {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
	return c.view(ctx, Message{}, validation.FieldName)
}

// Delete removes a student. Edit mode, if active, is left alone.
func (c *Controller) Delete(ctx context.Context, id string) View {
	log := logging.FromContext(ctx).With(slog.String("id", id))
	if err := c.api.DeleteStudent(ctx, id); err != nil {
		log.Error("deleting student failed", slog.String("error", err.Error()))
		return c.view(ctx, errorMessage(userMessage(err)), "")
	}

	log.Info("student deleted")
	return c.view(ctx, successMessage(MsgDeleted), "")
}

// reset clears the form and leaves edit mode. Callers hold c.mu.
func (c *Controller) reset() {
	c.form = FormInput{}
	c.editingID = ""
}

// view builds the page model from the current state and a fresh listing.
// The listing is fetched without holding c.mu.
func (c *Controller) view(ctx context.Context, msg Message, focus string) View {
	c.mu.Lock()
	v := View{
		Form:       c.form,
		EditingID:  c.editingID,
		Message:    msg,
		FocusField: focus,
	}
	c.mu.Unlock()

	students, err := c.api.ListStudents(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("loading students failed", slog.String("error", err.Error()))
		v.ListError = userMessage(err)
		// A failed refresh after a successful action still reports the
		// listing problem; an action error already on screen wins.
		if v.Message.Text == "" {
			v.Message = errorMessage(v.ListError)
		}
		return v
	}

	v.Rows = make([]Row, 0, len(students))
	for _, s := range students {
		v.Rows = append(v.Rows, RowFromStudent(s))
	}
	return v
}

// userMessage picks the text shown for a failed remote call.
func userMessage(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok {
		return apiErr.Message
	}
	return MsgUnavailable
}

func fieldOf(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok {
		return apiErr.Field
	}
	return ""
}

// RowFromStudent builds a listing row, substituting the placeholder for
// absent optional values.
func RowFromStudent(s types.Student) Row {
	row := Row{
		ID:            strconv.FormatInt(s.ID, 10),
		Name:          s.Name,
		StudentNumber: s.StudentNumber,
		Address:       format.Placeholder,
		PhoneNumber:   format.Placeholder,
		Email:         format.Placeholder,
		DateOfBirth:   format.Placeholder,
	}
	if d := s.Detail; d != nil {
		row.Address = format.OrPlaceholder(d.Address)
		row.PhoneNumber = format.OrPlaceholder(d.PhoneNumber)
		row.Email = format.OrPlaceholder(d.Email)
		if d.DateOfBirth != nil {
			row.DateOfBirth = format.OrPlaceholder(format.FormatDate(*d.DateOfBirth))
		}
	}
	return row
}
