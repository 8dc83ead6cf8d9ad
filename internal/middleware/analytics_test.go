package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedEvent struct {
	distinctID string
	event      string
	properties map[string]any
}

type fakeTracker struct {
	enabled bool
	events  []capturedEvent
}

func (f *fakeTracker) Enabled() bool { return f.enabled }

func (f *fakeTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	f.events = append(f.events, capturedEvent{distinctID, event, properties})
}

// fakeAuth stamps a fixed user ID into the request context the same way the
// auth middleware does.
func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func newTrackedRouter(tracker EventTracker, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", EventTracking(tracker), func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	v1 := r.Group("/api/v1", fakeAuth(userID), EventTracking(tracker))
	v1.GET("/transactions/:transactionID", func(c *gin.Context) { c.Status(http.StatusOK) })
	v1.POST("/imports", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	return r
}

func TestEventTracking_ReportsSuccessfulRequest(t *testing.T) {
	tracker := &fakeTracker{enabled: true}
	r := newTrackedRouter(tracker, "user-42")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/txn-7", nil)
	r.ServeHTTP(w, req)

	require.Len(t, tracker.events, 1)
	ev := tracker.events[0]
	assert.Equal(t, "user-42", ev.distinctID)
	assert.Equal(t, "api_v1_transactions_:transactionID", ev.event)
	assert.Equal(t, http.MethodGet, ev.properties["method"])
	assert.Equal(t, http.StatusOK, ev.properties["status_code"])
	params, ok := ev.properties["params"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "txn-7", params["transactionID"])
}

func TestEventTracking_SkipsFailedRequest(t *testing.T) {
	tracker := &fakeTracker{enabled: true}
	r := newTrackedRouter(tracker, "user-42")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", nil)
	r.ServeHTTP(w, req)

	assert.Empty(t, tracker.events)
}

func TestEventTracking_SkipsHealthAndDisabledTracker(t *testing.T) {
	tracker := &fakeTracker{enabled: true}
	r := newTrackedRouter(tracker, "user-42")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, tracker.events)

	disabled := &fakeTracker{enabled: false}
	r = newTrackedRouter(disabled, "user-42")
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/transactions/txn-7", nil))
	assert.Empty(t, disabled.events)
}

func TestRouteEventName(t *testing.T) {
	assert.Equal(t, "api_v1_transactions", routeEventName("/api/v1/transactions"))
	assert.Equal(t, "", routeEventName("/"))
	assert.Equal(t, "", routeEventName(""))
}
