package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avelisk/remindd/internal/mailer"
	"github.com/avelisk/remindd/internal/server"
	"github.com/avelisk/remindd/internal/store"
	"github.com/avelisk/remindd/pkg/models"
)

var allowList = []string{"alice@example.com", "bob@example.com"}

// stubMailer records dispatch calls instead of hitting the provider.
type sendCall struct {
	To   string
	Text string
}

type stubMailer struct {
	calls []sendCall
	err   error
}

func (m *stubMailer) Send(_ context.Context, to, text string) (*mailer.Response, error) {
	m.calls = append(m.calls, sendCall{To: to, Text: text})
	if m.err != nil {
		return nil, m.err
	}
	return &mailer.Response{ID: "<msg-1@example.com>", Message: "Queued. Thank you."}, nil
}

// failingStore fails every operation with a fixed error.
type failingStore struct{}

func (failingStore) Add(context.Context, models.Event) (string, error) {
	return "", errors.New("firestore unavailable")
}
func (failingStore) ListAll(context.Context) ([]models.StoredEvent, error) {
	return nil, errors.New("firestore unavailable")
}
func (failingStore) ListByCreator(context.Context, string) ([]models.StoredEvent, error) {
	return nil, errors.New("firestore unavailable")
}

func setup(t *testing.T) (*gin.Engine, *store.MemoryStore, *stubMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	st := store.NewMemoryStore()
	m := &stubMailer{}
	srv := server.New(logger, st, m, allowList)
	return srv.Router(), st, m
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := setup(t)
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestSendEmail_MissingFields(t *testing.T) {
	cases := map[string]map[string]string{
		"missing email":   {"message": "hi"},
		"missing message": {"email": "alice@example.com"},
		"empty body":      {},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			router, _, m := setup(t)
			w := doJSON(t, router, http.MethodPost, "/send-email", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, decode(t, w)["success"])
			assert.Empty(t, m.calls)
		})
	}
}

func TestSendEmail_UnauthorizedRecipient(t *testing.T) {
	router, _, m := setup(t)
	w := doJSON(t, router, http.MethodPost, "/send-email",
		map[string]string{"email": "not-listed@x.com", "message": "hi"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, `The email "not-listed@x.com" is not authorized in the Mailgun Sandbox.`, resp["error"])
	assert.Empty(t, m.calls, "provider must not be invoked for denied addresses")
}

func TestSendEmail_AuthorizedRecipients(t *testing.T) {
	for _, addr := range allowList {
		t.Run(addr, func(t *testing.T) {
			router, _, m := setup(t)
			w := doJSON(t, router, http.MethodPost, "/send-email",
				map[string]string{"email": addr, "message": "see you at ten"})

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decode(t, w)
			assert.Equal(t, true, resp["success"])
			body, ok := resp["body"].(map[string]interface{})
			require.True(t, ok)
			assert.NotEmpty(t, body["id"])

			require.Len(t, m.calls, 1)
			assert.Equal(t, addr, m.calls[0].To)
			assert.Equal(t, "see you at ten", m.calls[0].Text)
		})
	}
}

func TestSendEmail_ProviderFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := &stubMailer{err: errors.New("mailgun: 401 unauthorized")}
	srv := server.New(zap.NewNop(), store.NewMemoryStore(), m, allowList)
	w := doJSON(t, srv.Router(), http.MethodPost, "/send-email",
		map[string]string{"email": "alice@example.com", "message": "hi"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "mailgun: 401 unauthorized", resp["error"])
}

func TestCreateEvent_MissingFields(t *testing.T) {
	full := map[string]string{
		"title":     "Talk",
		"start":     "2024-01-01T10:00",
		"remindAt":  "2024-01-01T09:00",
		"createdBy": "a@x.com",
	}
	for field := range full {
		t.Run("missing "+field, func(t *testing.T) {
			router, st, _ := setup(t)
			body := map[string]string{}
			for k, v := range full {
				if k != field {
					body[k] = v
				}
			}
			w := doJSON(t, router, http.MethodPost, "/events", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, decode(t, w)["success"])

			events, err := st.ListAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, events, "no document may be created on validation failure")
		})
	}
}

func TestCreateEvent_DefaultsNotes(t *testing.T) {
	router, st, _ := setup(t)
	w := doJSON(t, router, http.MethodPost, "/events", map[string]string{
		"title":     "Talk",
		"start":     "2024-01-01T10:00",
		"remindAt":  "2024-01-01T09:00",
		"createdBy": "a@x.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["id"])

	event, ok := resp["event"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Talk", event["title"])
	assert.Equal(t, "2024-01-01T10:00", event["start"])
	assert.Equal(t, "2024-01-01T09:00", event["remindAt"])
	assert.Equal(t, "a@x.com", event["createdBy"])
	assert.Equal(t, "", event["notes"])

	events, err := st.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "", events[0].Notes)
}

func TestCreateEvent_KeepsNotes(t *testing.T) {
	router, st, _ := setup(t)
	w := doJSON(t, router, http.MethodPost, "/events", map[string]string{
		"title":     "Standup",
		"start":     "2024-02-01T09:00",
		"remindAt":  "2024-02-01T08:45",
		"createdBy": "b@x.com",
		"notes":     "bring the roadmap",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	events, err := st.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "bring the roadmap", events[0].Notes)
}

func TestListEvents(t *testing.T) {
	router, st, _ := setup(t)
	creators := []string{"a@x.com", "b@x.com", "a@x.com", "c@x.com"}
	for i, createdBy := range creators {
		_, err := st.Add(context.Background(), models.Event{
			Title:     fmt.Sprintf("event %d", i),
			Start:     "2024-01-01T10:00",
			RemindAt:  "2024-01-01T09:00",
			CreatedBy: createdBy,
		})
		require.NoError(t, err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/events", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	events, ok := resp["events"].([]interface{})
	require.True(t, ok)
	assert.Len(t, events, len(creators))
	for _, raw := range events {
		ev := raw.(map[string]interface{})
		assert.NotEmpty(t, ev["id"])
	}
}

func TestListEventsByCreator(t *testing.T) {
	router, st, _ := setup(t)
	for _, createdBy := range []string{"a@x.com", "b@x.com", "a@x.com", "A@x.com"} {
		_, err := st.Add(context.Background(), models.Event{
			Title:     "t",
			Start:     "s",
			RemindAt:  "r",
			CreatedBy: createdBy,
		})
		require.NoError(t, err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/events/a@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	events := decode(t, w)["events"].([]interface{})
	require.Len(t, events, 2, "match is exact and case-sensitive")
	for _, raw := range events {
		ev := raw.(map[string]interface{})
		assert.Equal(t, "a@x.com", ev["createdBy"])
	}
}

func TestListEventsByCreator_NoMatches(t *testing.T) {
	router, _, _ := setup(t)
	w := doJSON(t, router, http.MethodGet, "/api/events/nobody@x.com", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	events, ok := resp["events"].([]interface{})
	require.True(t, ok, "empty result must still be a list")
	assert.Empty(t, events)
}

func TestStoreFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := server.New(zap.NewNop(), failingStore{}, &stubMailer{}, allowList)
	router := srv.Router()

	t.Run("list", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/events", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decode(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "firestore unavailable", resp["error"])
	})

	t.Run("filter", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/events/a@x.com", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("create", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/events", map[string]string{
			"title": "t", "start": "s", "remindAt": "r", "createdBy": "a@x.com",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "firestore unavailable", decode(t, w)["error"])
	})
}
