package views

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/ui"
	"github.com/aanand-mishra/student-records/internal/validation"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestMessageBanner(t *testing.T) {
	assert.Empty(t, render(t, MessageBanner(ui.Message{})))

	out := render(t, MessageBanner(ui.Message{Kind: ui.MessageError, Text: "name required"}))
	assert.Contains(t, out, `class="message error"`)
	assert.Contains(t, out, "name required")
}

func TestListing_Rows(t *testing.T) {
	out := render(t, Listing(ui.View{Rows: []ui.Row{{
		ID: "4", Name: "O'Brien", StudentNumber: "S12345",
		Address: "-", PhoneNumber: "-", Email: "-", DateOfBirth: "-",
	}}}))

	assert.Contains(t, out, `action="/students/4/edit"`)
	assert.Contains(t, out, `action="/students/4/delete" data-confirm-name="O&#39;Brien"`)
	assert.Equal(t, 4, strings.Count(out, "<td>-</td>"))
	assert.NotContains(t, out, ui.MsgEmptyList)
}

func TestListing_EmptyAndError(t *testing.T) {
	assert.Contains(t, render(t, Listing(ui.View{})), ui.MsgEmptyList)

	out := render(t, Listing(ui.View{ListError: "disk I/O error"}))
	assert.Contains(t, out, "disk I/O error")
	assert.NotContains(t, out, ui.MsgEmptyList)
}

func TestForm_EditMode(t *testing.T) {
	out := render(t, Form(ui.View{EditingID: "2", Form: ui.FormInput{Name: "Kim"}}))
	assert.Contains(t, out, labelUpdate)
	assert.Contains(t, out, `formaction="/cancel"`)
	assert.Contains(t, out, `value="Kim"`)

	out = render(t, Form(ui.View{}))
	assert.Contains(t, out, labelRegister)
	assert.NotContains(t, out, "autofocus")
}

func TestForm_FieldsInCheckingOrder(t *testing.T) {
	out := render(t, Form(ui.View{}))

	last := -1
	for _, name := range append(validation.Fields, fieldDateOfBirth) {
		i := strings.Index(out, `name="`+name+`"`)
		require.NotEqual(t, -1, i, name)
		assert.Greater(t, i, last, "%s out of order", name)
		last = i
	}

	assert.Equal(t, len(validation.Fields), strings.Count(out, "data-validate"))
	assert.Contains(t, out, `name="dateOfBirth" type="date" value="">`)
}
