package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/observability"
	"go.uber.org/zap"
)

// AuditLogger logs every back-office write operation with the acting
// administrator, so pipeline and catalogue changes are attributable
func AuditLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != "POST" && method != "PUT" && method != "PATCH" && method != "DELETE" {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.Request.URL.Path, "/v1/admin") {
			c.Next()
			return
		}

		actor := "unknown"
		if email, err := CallerEmail(c); err == nil && email != "" {
			actor = observability.MaskEmail(email)
		}

		c.Next()

		observability.Logger().Info("admin write operation",
			zap.String("actor", actor),
			zap.String("method", method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetString("RequestID")),
		)
	}
}
