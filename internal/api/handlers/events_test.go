package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gatherhub/server/internal/api/middleware"
	"github.com/gatherhub/server/internal/auth"
	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/metrics"
	"github.com/gatherhub/server/internal/storage/memory"
)

func newEventsHandler(t *testing.T) *EventsHandler {
	t.Helper()
	service := events.NewService(memory.NewEventStore(), zerolog.Nop())
	return NewEventsHandler(service, "test")
}

func authedRequest(method, path, body string, userID int64) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	claims := &auth.Claims{UserID: userID, Email: "user@example.com"}
	return req.WithContext(middleware.ContextWithClaims(req.Context(), claims))
}

func createEvent(t *testing.T, h *EventsHandler, userID int64, body string) events.Event {
	t.Helper()
	req := authedRequest(http.MethodPost, "/events", body, userID)
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Event
}

func TestEventsCreate(t *testing.T) {
	h := newEventsHandler(t)

	event := createEvent(t, h, 1, `{"title":"Meetup","description":"Monthly","date":"2026-09-15"}`)
	require.Equal(t, int64(1), event.ID)
	require.Equal(t, int64(1), event.CreatedBy)
	require.Equal(t, "Meetup", event.Title)
	require.Empty(t, event.Participants)
}

func TestEventsCreateCountsMetric(t *testing.T) {
	h := newEventsHandler(t)

	before := testutil.ToFloat64(metrics.EventsCreated)
	createEvent(t, h, 1, `{"title":"Meetup"}`)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.EventsCreated))

	// A rejected create leaves the counter alone.
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"Meetup"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.EventsCreated))
}

func TestEventsCreateRequiresIdentity(t *testing.T) {
	h := newEventsHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"Meetup"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventsListPublic(t *testing.T) {
	h := newEventsHandler(t)
	createEvent(t, h, 1, `{"title":"First"}`)
	createEvent(t, h, 2, `{"title":"Second"}`)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var list []events.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	require.Equal(t, "First", list[0].Title)
	require.Equal(t, "Second", list[1].Title)
}

func TestEventsGet(t *testing.T) {
	h := newEventsHandler(t)
	created := createEvent(t, h, 1, `{"title":"Meetup"}`)

	req := httptest.NewRequest(http.MethodGet, "/events/1", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var event events.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	require.Equal(t, created.ID, event.ID)
}

func TestEventsGetNotFound(t *testing.T) {
	h := newEventsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/events/99", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/events/abc", nil)
	req.SetPathValue("id", "abc")
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventsUpdatePartial(t *testing.T) {
	h := newEventsHandler(t)
	createEvent(t, h, 1, `{"title":"Meetup","description":"Monthly","date":"2026-09-15"}`)

	// An empty title leaves the stored title untouched.
	req := authedRequest(http.MethodPut, "/events/1", `{"title":"","date":"2026-10-01"}`, 1)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Event updated successfully", resp.Message)
	require.Equal(t, "Meetup", resp.Event.Title)
	require.Equal(t, "2026-10-01", resp.Event.Date)

	req = authedRequest(http.MethodPut, "/events/1", `{"title":"New"}`, 1)
	req.SetPathValue("id", "1")
	rec = httptest.NewRecorder()
	h.Update(rec, req)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "New", resp.Event.Title)
}

func TestEventsUpdateForbiddenForNonOwner(t *testing.T) {
	h := newEventsHandler(t)
	createEvent(t, h, 1, `{"title":"Meetup"}`)

	req := authedRequest(http.MethodPut, "/events/1", `{"title":"Hijacked"}`, 2)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Not authorized to update this event")
}

func TestEventsDelete(t *testing.T) {
	h := newEventsHandler(t)
	createEvent(t, h, 1, `{"title":"Meetup"}`)

	req := authedRequest(http.MethodDelete, "/events/1", "", 2)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Not authorized to delete this event")

	req = authedRequest(http.MethodDelete, "/events/1", "", 1)
	req.SetPathValue("id", "1")
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Event deleted successfully")

	req = httptest.NewRequest(http.MethodGet, "/events/1", nil)
	req.SetPathValue("id", "1")
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventsJoin(t *testing.T) {
	h := newEventsHandler(t)
	createEvent(t, h, 1, `{"title":"Meetup"}`)

	req := authedRequest(http.MethodPost, "/events/1/join", "", 2)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Join(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp eventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Successfully joined event", resp.Message)
	require.Equal(t, []int64{2}, resp.Event.Participants)

	// Joining is deliberately non-idempotent: a second join errors.
	req = authedRequest(http.MethodPost, "/events/1/join", "", 2)
	req.SetPathValue("id", "1")
	rec = httptest.NewRecorder()
	h.Join(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Already joined this event")
}

func TestEventsJoinNotFound(t *testing.T) {
	h := newEventsHandler(t)

	req := authedRequest(http.MethodPost, "/events/9/join", "", 2)
	req.SetPathValue("id", "9")
	rec := httptest.NewRecorder()
	h.Join(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
