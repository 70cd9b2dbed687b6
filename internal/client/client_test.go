package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/validation"
)

func newAPI(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	student.Routes(mux, memory.New())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func kim() types.StudentRequest {
	return types.StudentRequest{
		Name:          "Kim",
		StudentNumber: "S12345",
		DetailRequest: &types.Detail{
			Address:     "Seoul City",
			PhoneNumber: "010-1234-5678",
			Email:       "kim@example.com",
		},
	}
}

func TestClient_RoundTrip(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	students, err := c.ListStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	created, err := c.CreateStudent(ctx, kim())
	require.NoError(t, err)
	assert.Equal(t, "Kim", created.Name)
	require.NotNil(t, created.Detail)
	assert.Equal(t, "Seoul City", created.Detail.Address)

	id := strconv.FormatInt(created.ID, 10)

	got, err := c.GetStudent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	req := kim()
	req.Name = "Kim Updated"
	updated, err := c.UpdateStudent(ctx, id, req)
	require.NoError(t, err)
	assert.Equal(t, "Kim Updated", updated.Name)

	students, err = c.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Kim Updated", students[0].Name)

	require.NoError(t, c.DeleteStudent(ctx, id))

	students, err = c.ListStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestClient_APIErrors(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	_, err := c.GetStudent(ctx, "42")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "no student found with id 42")

	req := kim()
	req.DetailRequest.Email = "nope"
	_, err = c.CreateStudent(ctx, req)
	apiErr, ok = AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, validation.MsgEmailFormat, apiErr.Message)
	assert.Equal(t, validation.FieldEmail, apiErr.Field)

	err = c.DeleteStudent(ctx, "not-a-number")
	apiErr, ok = AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).ListStudents(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "request failed with status 502", apiErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).ListStudents(context.Background())
	require.Error(t, err)
	_, ok := AsAPIError(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "list students")
}

func TestClient_RequestID(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(middleware.RequestIDHeader))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "web-7")
	_, err := c.ListStudents(ctx)
	require.NoError(t, err)

	_, err = c.ListStudents(context.Background())
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "web-7", seen[0])
	_, err = uuid.Parse(seen[1])
	assert.NoError(t, err)
}

func TestClient_EscapesID(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).GetStudent(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/api/students/a%2Fb", path)
}
