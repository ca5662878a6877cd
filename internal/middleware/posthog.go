package middleware

import (
	"net/http"
	"strings"

	"github.com/acctflow/voucher_approval_app/internal/utils/analytics"
	"github.com/gin-gonic/gin"
)

// analyticsPathsToSkip contains paths that should never be tracked.
var analyticsPathsToSkip = map[string]bool{
	"/health": true,
}

// analyticsEventName derives a capture event name from the matched route
// path (e.g. "/api/v1/vouchers" -> "api_v1_vouchers").
func analyticsEventName(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/")
	return strings.ReplaceAll(name, "/", "_")
}

// PosthogMiddleware tracks successful API calls as product analytics events,
// keyed to the authenticated actor. Must run after the auth middleware.
func PosthogMiddleware(posthogClient *analytics.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || analyticsPathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		// Only successful requests become events.
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		actor, ok := GetActorFromContext(c)
		if !ok {
			return
		}

		eventName := analyticsEventName(c.FullPath())
		if eventName == "" {
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

		posthogClient.Enqueue(actor.UserID, eventName, props)
	}
}
