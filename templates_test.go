package veilmail

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_CreateMapsVariables(t *testing.T) {
	rec := newRecorder(http.StatusCreated, map[string]any{
		"data": map[string]any{
			"id":      "tpl_1",
			"name":    "welcome",
			"subject": "Hi {{firstName}}",
			"version": 1,
			"variablesSchema": []map[string]any{
				{"name": "firstName", "type": "string", "required": true},
			},
		},
	})
	c := newTestClient(t, rec)

	tpl, err := c.Templates.Create(context.Background(), &TemplateParams{
		Name:    "welcome",
		Subject: "Hi {{firstName}}",
		Variables: []TemplateVariable{
			{Name: "firstName", Type: VariableTypeString, Required: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "tpl_1", tpl.ID)
	assert.Equal(t, 1, tpl.Version)
	require.Len(t, tpl.Variables, 1)
	assert.Equal(t, "firstName", tpl.Variables[0].Name)
	assert.True(t, tpl.Variables[0].Required)

	body := rec.last(t).JSON(t)
	assert.Contains(t, body, "variablesSchema")
	assert.NotContains(t, body, "variables")
	assert.NotContains(t, body, "Variables")
}

func TestTemplates_List(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{
		"data": []map[string]any{
			{"id": "tpl_1", "variablesSchema": []map[string]any{{"name": "a"}}},
			{"id": "tpl_2"},
		},
		"hasMore":    true,
		"nextCursor": "tpl_2",
	})
	c := newTestClient(t, rec)

	page, err := c.Templates.List(context.Background(), &ListTemplatesParams{Category: "onboarding"})
	require.NoError(t, err)

	require.Len(t, page.Data, 2)
	assert.Equal(t, "a", page.Data[0].Variables[0].Name)
	assert.True(t, page.HasMore)
	assert.Equal(t, "tpl_2", page.NextCursor)
	assert.Equal(t, "onboarding", rec.last(t).Query.Get("category"))
}

func TestTemplates_Render(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{"subject": "Hi Ada", "html": "<p>Hi Ada</p>"})
	c := newTestClient(t, rec)

	out, err := c.Templates.Render(context.Background(), "tpl_1", map[string]any{"firstName": "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "Hi Ada", out.Subject)
	req := rec.last(t)
	assert.Equal(t, "/v1/templates/tpl_1/render", req.Path)
	assert.Equal(t, map[string]any{"firstName": "Ada"}, req.JSON(t)["variables"])
}

func TestTemplates_PreviewReturnsRawText(t *testing.T) {
	var accept string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html><body>Hello</body></html>")
	})
	c := newTestClient(t, h)

	html, err := c.Templates.Preview(context.Background(), "tpl_1")
	require.NoError(t, err)

	assert.Equal(t, "<html><body>Hello</body></html>", html)
	assert.Equal(t, "text/html", accept)
}

func TestTemplates_PreviewNotFound(t *testing.T) {
	c := newTestClient(t, newRecorder(http.StatusNotFound, errorBody("not_found", "Not found", nil)))

	_, err := c.Templates.Preview(context.Background(), "tpl_x")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `template "tpl_x" not found`)
}

func TestTemplateEditing_SaveSendsExpectedVersion(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{"id": "tpl_1", "version": 4})
	c := newTestClient(t, rec)

	tpl, err := c.Templates.Editing.Save(context.Background(), "tpl_1", &SaveTemplateParams{
		ExpectedVersion: 3,
		HTML:            "<p>v4</p>",
		Variables:       []TemplateVariable{{Name: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, tpl.Version)

	req := rec.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/v1/templates/tpl_1/content", req.Path)
	body := req.JSON(t)
	assert.EqualValues(t, 3, body["expectedVersion"])
	assert.Contains(t, body, "variablesSchema")
}

func TestTemplateEditing_SaveConflict(t *testing.T) {
	rec := newRecorder(http.StatusConflict, errorBody(CodeVersionConflict, "template was modified", map[string]any{"currentVersion": 5}))
	c := newTestClient(t, rec)

	_, err := c.Templates.Editing.Save(context.Background(), "tpl_1", &SaveTemplateParams{ExpectedVersion: 3})

	require.Error(t, err)
	assert.True(t, IsVersionConflict(err))
	assert.Equal(t, KindAPI, KindOf(err))
}

func TestTemplateEditing_SaveRequiresParams(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{})
	c := newTestClient(t, rec)

	_, err := c.Templates.Editing.Save(context.Background(), "tpl_1", nil)

	assert.EqualError(t, err, "save params are required")
	assert.Empty(t, rec.requests)
}

func TestTemplateEditing_Presence(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{
		"data": []map[string]any{
			{"userId": "u_1", "name": "Ada", "section": "footer"},
			{"userId": "u_2"},
		},
	})
	c := newTestClient(t, rec)

	entries, err := c.Templates.Editing.Presence(context.Background(), "tpl_1")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "u_1", entries[0].UserID)
	assert.Equal(t, "footer", entries[0].Section)
	assert.Equal(t, "/v1/templates/tpl_1/presence", rec.last(t).Path)
}

func TestTemplateEditing_Lock(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{"templateId": "tpl_1", "lockedBy": map[string]any{"userId": "u_1"}})
	c := newTestClient(t, rec)
	ctx := context.Background()

	lock, err := c.Templates.Editing.AcquireLock(ctx, "tpl_1")
	require.NoError(t, err)
	assert.Equal(t, "u_1", lock.LockedBy.UserID)
	assert.Equal(t, http.MethodPost, rec.last(t).Method)

	require.NoError(t, c.Templates.Editing.ReleaseLock(ctx, "tpl_1"))
	req := rec.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/v1/templates/tpl_1/lock", req.Path)
}

func TestIsVersionConflict_OtherErrors(t *testing.T) {
	assert.False(t, IsVersionConflict(nil))
	assert.False(t, IsVersionConflict(&Error{Kind: KindValidation, StatusCode: 422}))
	assert.True(t, IsVersionConflict(&Error{Kind: KindAPI, StatusCode: 400, Code: CodeVersionConflict}))
}
