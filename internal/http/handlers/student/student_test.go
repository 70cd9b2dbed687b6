package student

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/aanand-mishra/student-records/internal/validation"
)

const kimJSON = `{
	"name": "Kim",
	"studentNumber": "S12345",
	"detailRequest": {
		"address": "Seoul City",
		"phoneNumber": "010-1234-5678",
		"email": "kim@example.com",
		"dateOfBirth": "2001-03-09"
	}
}`

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	Routes(mux, memory.New())
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusError, resp.Status)
	return resp
}

func TestCreate_ReturnsReadShape(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodPost, "/api/students", kimJSON)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "detail")
	assert.NotContains(t, raw, "detailRequest")

	var created types.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Kim", created.Name)
	require.NotNil(t, created.Detail)
	require.NotNil(t, created.Detail.DateOfBirth)
	assert.Equal(t, "2001-03-09", *created.Detail.DateOfBirth)
}

func TestCreate_BadBodies(t *testing.T) {
	mux := newMux()

	t.Run("empty body", func(t *testing.T) {
		rec := do(t, mux, http.MethodPost, "/api/students", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "request body is empty", decodeError(t, rec).Error)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := do(t, mux, http.MethodPost, "/api/students", "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("record rule", func(t *testing.T) {
		rec := do(t, mux, http.MethodPost, "/api/students", `{"name":"A","studentNumber":"S12345"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, validation.MsgNameTooShort, resp.Error)
		assert.Equal(t, validation.FieldName, resp.Field)
	})

	t.Run("structural rule", func(t *testing.T) {
		body := `{"name":"Kim","studentNumber":"S12345","detailRequest":{
			"address":"Seoul City","phoneNumber":"010","email":"a@b.com","dateOfBirth":"09/03/2001"}}`
		rec := do(t, mux, http.MethodPost, "/api/students", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "dateOfBirth", resp.Field)
		assert.Contains(t, resp.Error, "2006-01-02")
	})

	t.Run("too long", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("k", 101) + `","studentNumber":"S12345"}`
		rec := do(t, mux, http.MethodPost, "/api/students", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "field name must be at most 100 characters", decodeError(t, rec).Error)
	})
}

func TestList(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	do(t, mux, http.MethodPost, "/api/students", kimJSON)
	do(t, mux, http.MethodPost, "/api/students", `{"name":"Lee","studentNumber":"A98765"}`)

	rec = do(t, mux, http.MethodGet, "/api/students", "")
	var students []types.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	require.Len(t, students, 2)
	assert.Equal(t, "Kim", students[0].Name)
	assert.Nil(t, students[1].Detail)
}

func TestGetByID(t *testing.T) {
	mux := newMux()
	do(t, mux, http.MethodPost, "/api/students", kimJSON)

	rec := do(t, mux, http.MethodGet, "/api/students/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/students/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	decodeError(t, rec)

	rec = do(t, mux, http.MethodGet, "/api/students/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id: must be an integer", decodeError(t, rec).Error)
}

func TestUpdate(t *testing.T) {
	mux := newMux()
	do(t, mux, http.MethodPost, "/api/students", kimJSON)

	rec := do(t, mux, http.MethodPut, "/api/students/1", `{"name":"Kim Updated","studentNumber":"S54321"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Kim Updated", updated.Name)
	assert.Nil(t, updated.Detail)

	rec = do(t, mux, http.MethodPut, "/api/students/7", `{"name":"Kim","studentNumber":"S12345"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodPut, "/api/students/1", `{"name":"Kim","studentNumber":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, validation.FieldStudentNumber, decodeError(t, rec).Field)
}

func TestDelete(t *testing.T) {
	mux := newMux()
	do(t, mux, http.MethodPost, "/api/students", kimJSON)

	rec := do(t, mux, http.MethodDelete, "/api/students/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())

	rec = do(t, mux, http.MethodDelete, "/api/students/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
