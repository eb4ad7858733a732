package veilmail

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribers_ScopedToAudience(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{"id": "sub_1", "audienceId": "aud_1", "email": "a@example.com"})
	c := newTestClient(t, rec)
	ctx := context.Background()

	subs := c.Audiences.Subscribers("aud_1")
	assert.Equal(t, "aud_1", subs.AudienceID())

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"add", func() error { _, err := subs.Add(ctx, &AddSubscriberParams{Email: "a@example.com"}); return err }, http.MethodPost, "/v1/audiences/aud_1/subscribers"},
		{"get", func() error { _, err := subs.Get(ctx, "sub_1"); return err }, http.MethodGet, "/v1/audiences/aud_1/subscribers/sub_1"},
		{"update", func() error { _, err := subs.Update(ctx, "sub_1", &UpdateSubscriberParams{FirstName: "Ada"}); return err }, http.MethodPatch, "/v1/audiences/aud_1/subscribers/sub_1"},
		{"confirm", func() error { _, err := subs.Confirm(ctx, "sub_1"); return err }, http.MethodPost, "/v1/audiences/aud_1/subscribers/sub_1/confirm"},
		{"remove", func() error { return subs.Remove(ctx, "sub_1") }, http.MethodDelete, "/v1/audiences/aud_1/subscribers/sub_1"},
		{"import", func() error { _, err := subs.Import(ctx, &ImportSubscribersParams{}); return err }, http.MethodPost, "/v1/audiences/aud_1/subscribers/import"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			req := rec.last(t)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
		})
	}
}

func TestSubscribers_List(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{
		"data": []map[string]any{{"id": "sub_1", "status": "pending"}},
	})
	c := newTestClient(t, rec)

	page, err := c.Audiences.Subscribers("aud 1").List(context.Background(), &ListSubscribersParams{Status: SubscriberStatusPending})
	require.NoError(t, err)

	assert.Equal(t, SubscriberStatusPending, page.Data[0].Status)
	req := rec.last(t)
	assert.Equal(t, "/v1/audiences/aud%201/subscribers", req.Path)
	assert.Equal(t, "pending", req.Query.Get("status"))
}

func TestSubscribers_Import(t *testing.T) {
	rec := newRecorder(http.StatusOK, map[string]any{
		"imported": 2,
		"skipped":  1,
		"errors":   []map[string]any{{"code": "invalid_email", "message": "bad"}},
	})
	c := newTestClient(t, rec)

	res, err := c.Audiences.Subscribers("aud_1").Import(context.Background(), &ImportSubscribersParams{
		Subscribers: []AddSubscriberParams{
			{Email: "a@example.com"},
			{Email: "b@example.com", SkipConfirmation: true},
			{Email: "nope"},
		},
		UpdateExisting: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)

	body := rec.last(t).JSON(t)
	assert.Equal(t, true, body["updateExisting"])
	assert.Len(t, body["subscribers"], 3)
}

func TestSubscribers_MissingAudience(t *testing.T) {
	c := newTestClient(t, newRecorder(http.StatusNotFound, nil))

	_, err := c.Audiences.Subscribers("aud_gone").Add(context.Background(), &AddSubscriberParams{Email: "a@example.com"})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `audience "aud_gone" not found`)
}

func TestAudiences_CreateDoubleOptIn(t *testing.T) {
	rec := newRecorder(http.StatusCreated, map[string]any{"id": "aud_1", "doubleOptIn": true})
	c := newTestClient(t, rec)

	optIn := true
	aud, err := c.Audiences.Create(context.Background(), &AudienceParams{Name: "newsletter", DoubleOptIn: &optIn})
	require.NoError(t, err)

	assert.True(t, aud.DoubleOptIn)
	assert.Equal(t, true, rec.last(t).JSON(t)["doubleOptIn"])
}
