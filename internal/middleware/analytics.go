package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventTracker captures product analytics events for an authenticated user.
// Implemented by utils.PosthogClient; a disabled tracker drops everything.
type EventTracker interface {
	Enabled() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// untrackedPaths are never reported as events.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// EventTracking reports each successful authenticated request as an analytics
// event named after its route. It must run after the auth middleware since the
// user ID from the request context becomes the distinct ID.
func EventTracking(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.Enabled() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		eventName := routeEventName(c.FullPath())
		if eventName == "" {
			// unmatched route, nothing meaningful to report
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		tracker.Enqueue(userID, eventName, props)
	}
}

// routeEventName turns a route template into an event name, for example
// "/api/v1/transactions/:transactionID" becomes
// "api_v1_transactions_:transactionID".
func routeEventName(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/")
	return strings.ReplaceAll(name, "/", "_")
}
