package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/client"
	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/ui"
	"github.com/aanand-mishra/student-records/internal/validation"
)

// newFrontEnd wires the page to a real records API backed by memory.
func newFrontEnd(t *testing.T) (*Server, *ui.Controller) {
	t.Helper()
	mux := http.NewServeMux()
	student.Routes(mux, memory.New())
	api := httptest.NewServer(mux)
	t.Cleanup(api.Close)

	controller := ui.NewController(client.New(api.URL, api.Client()))
	return NewServer(controller), controller
}

func get(t *testing.T, s http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, s http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func kimForm() url.Values {
	return url.Values{
		"name":          {"Kim"},
		"studentNumber": {"S12345"},
		"address":       {"Seoul City"},
		"phoneNumber":   {"010-1234-5678"},
		"email":         {"kim@example.com"},
		"dateOfBirth":   {"2001-03-09"},
	}
}

func TestPage_Empty(t *testing.T) {
	s, _ := newFrontEnd(t)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, ui.MsgEmptyList)
	assert.Contains(t, body, "Register student")
	assert.NotContains(t, body, "cancel-btn")
}

func TestSubmit_CreateEditUpdateDelete(t *testing.T) {
	s, controller := newFrontEnd(t)

	rec := post(t, s, "/students", kimForm())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, ui.MsgCreated)
	assert.Contains(t, body, "<td>Kim</td>")
	assert.Contains(t, body, "<td>March 9, 2001</td>")

	rec = post(t, s, "/students/1/edit", nil)
	body = rec.Body.String()
	assert.Equal(t, "1", controller.EditingID())
	assert.Contains(t, body, "Update student")
	assert.Contains(t, body, "cancel-btn")
	assert.Contains(t, body, `name="name" type="text" value="Kim" data-validate autofocus`)

	form := kimForm()
	form.Set("name", "Kim Updated")
	rec = post(t, s, "/students", form)
	body = rec.Body.String()
	assert.Contains(t, body, ui.MsgUpdated)
	assert.Contains(t, body, "<td>Kim Updated</td>")
	assert.Empty(t, controller.EditingID())

	rec = post(t, s, "/students/1/delete", nil)
	body = rec.Body.String()
	assert.Contains(t, body, ui.MsgDeleted)
	assert.Contains(t, body, ui.MsgEmptyList)
}

func TestSubmit_ValidationFocusesField(t *testing.T) {
	s, _ := newFrontEnd(t)

	form := kimForm()
	form.Set("email", "not-an-email")
	body := post(t, s, "/students", form).Body.String()

	assert.Contains(t, body, validation.MsgEmailFormat)
	assert.Contains(t, body, `name="email" type="email" value="not-an-email" data-validate autofocus`)
	assert.Contains(t, body, `value="Kim"`, "form keeps the user's input")
}

func TestCancel(t *testing.T) {
	s, controller := newFrontEnd(t)
	post(t, s, "/students", kimForm())
	post(t, s, "/students/1/edit", nil)

	body := post(t, s, "/cancel", nil).Body.String()
	assert.Empty(t, controller.EditingID())
	assert.Contains(t, body, "Register student")
}

func TestEdit_Unknown(t *testing.T) {
	s, _ := newFrontEnd(t)

	body := post(t, s, "/students/99/edit", nil).Body.String()
	assert.Contains(t, body, "no student found with id 99")
	assert.Contains(t, body, `class="message error"`)
}

func TestPage_EscapesValues(t *testing.T) {
	s, _ := newFrontEnd(t)

	form := kimForm()
	form.Set("name", "<b>Kim</b>")
	body := post(t, s, "/students", form).Body.String()

	assert.NotContains(t, body, "<b>Kim</b>")
	assert.Contains(t, body, "&lt;b&gt;Kim&lt;/b&gt;")
}

func TestPage_ListingUnavailable(t *testing.T) {
	api := httptest.NewServer(http.NotFoundHandler())
	apiURL := api.URL
	api.Close()

	s := NewServer(ui.NewController(client.New(apiURL, nil)))
	body := get(t, s, "/").Body.String()

	assert.Contains(t, body, "Error: could not load students.")
	assert.Contains(t, body, ui.MsgUnavailable)
}

func TestValidateFieldEndpoint(t *testing.T) {
	s, _ := newFrontEnd(t)

	rec := get(t, s, "/api/validate?field=email&value=a%40b")
	require.Equal(t, http.StatusOK, rec.Code)

	var res validation.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.IsValid)
	assert.Equal(t, validation.FieldEmail, res.Field)
	assert.Equal(t, validation.MsgEmailFormat, res.Message)

	rec = get(t, s, "/api/validate?field=dateOfBirth&value=whatever")
	var unknown validation.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unknown))
	assert.Equal(t, validation.Valid(), unknown)
}

func TestStaticScript(t *testing.T) {
	s, _ := newFrontEnd(t)

	rec := get(t, s, "/static/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/validate")
}
