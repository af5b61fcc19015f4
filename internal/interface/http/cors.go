package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const preflightMaxAge = "600"

// corsMiddleware admits the UI shell's webview. Entries may end in ":*" to
// accept any port on that host, which covers dev servers on random ports.
// With no entries every origin is allowed.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		headers.Add("Vary", "Origin")
		if origin, ok := matchOrigin(c.GetHeader("Origin"), allowed); ok {
			headers.Set("Access-Control-Allow-Origin", origin)
			headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			headers.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
			headers.Set("Access-Control-Expose-Headers", requestIDHeader)
			headers.Set("Access-Control-Max-Age", preflightMaxAge)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func matchOrigin(origin string, allowed []string) (string, bool) {
	if len(allowed) == 0 {
		return "*", true
	}
	if origin == "" {
		return "", false
	}
	for _, candidate := range allowed {
		switch {
		case candidate == "*":
			return "*", true
		case strings.EqualFold(candidate, origin):
			return origin, true
		case strings.HasSuffix(candidate, ":*"):
			host := strings.TrimSuffix(candidate, "*")
			if strings.HasPrefix(strings.ToLower(origin), strings.ToLower(host)) && isPort(origin[len(host):]) {
				return origin, true
			}
		}
	}
	return "", false
}

func isPort(s string) bool {
	if s == "" || len(s) > 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
