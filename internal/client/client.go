// Package client talks to the records API on behalf of the front end.
//
// Every operation is independent: it either returns the resource (or
// nothing, for delete) or an error whose message can be shown to the
// user as is. Nothing is retried and no timeout is imposed here; a
// request runs until the server answers or the transport fails.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

const studentsPath = "/api/students"

// APIError is returned when the records API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
	// Field names the offending form field when the API rejected the
	// record during validation.
	Field string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for the API rooted at baseURL. A nil httpClient
// means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListStudents fetches every student.
func (c *Client) ListStudents(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, http.MethodGet, studentsPath, nil, &students); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if students == nil {
		students = []types.Student{}
	}
	return students, nil
}

// GetStudent fetches one student by id.
func (c *Client) GetStudent(ctx context.Context, id string) (types.Student, error) {
	var student types.Student
	if err := c.do(ctx, http.MethodGet, studentPath(id), nil, &student); err != nil {
		return types.Student{}, fmt.Errorf("get student %s: %w", id, err)
	}
	return student, nil
}

// CreateStudent stores a new student and returns it as stored.
func (c *Client) CreateStudent(ctx context.Context, req types.StudentRequest) (types.Student, error) {
	var student types.Student
	if err := c.do(ctx, http.MethodPost, studentsPath, req, &student); err != nil {
		return types.Student{}, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}

// UpdateStudent replaces the student with the given id.
func (c *Client) UpdateStudent(ctx context.Context, id string, req types.StudentRequest) (types.Student, error) {
	var student types.Student
	if err := c.do(ctx, http.MethodPut, studentPath(id), req, &student); err != nil {
		return types.Student{}, fmt.Errorf("update student %s: %w", id, err)
	}
	return student, nil
}

// DeleteStudent removes the student with the given id.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, studentPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete student %s: %w", id, err)
	}
	return nil
}

func studentPath(id string) string {
	return studentsPath + "/" + url.PathEscape(id)
}

// do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.RequestIDHeader, requestID(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
	}

	var envelope response.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
		apiErr.Field = envelope.Field
	}
	return apiErr
}

// requestID propagates the caller's request id so one user action can be
// followed across the front end and the API logs.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// AsAPIError reports whether err came from a non-2xx API response.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
