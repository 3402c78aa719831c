package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"diarybook/src/app/http/response"
)

// Recovery turns a panic into a 500 envelope and logs it with its stack.
// With expose set, the panic value is returned to the client in the detail field.
//
// It should be first in the chain so it sees panics from every other middleware.
func Recovery(log *slog.Logger, expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				requestID := GetRequestID(c)
				log.Error("panic recovered",
					"request_id", requestID,
					"error", rec,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack", string(debug.Stack()),
				)

				detail := ""
				if expose {
					detail = fmt.Sprint(rec)
				}
				response.InternalError(c, requestID, detail)
			}
		}()

		c.Next()
	}
}
