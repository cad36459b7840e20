// Package middleware holds the gin middleware shared by every route:
// error rendering, request logging, panic recovery and authorization.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/apperr"
)

const internalMessage = "something went wrong, please try again later"

// ErrorHandler renders the last error a handler attached with c.Error.
// Client-facing errors keep their message; anything else becomes a 500
// whose cause only goes to the log.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		status, message := Render(last.Err)
		if apperr.KindOf(last.Err) == apperr.KindInternal {
			logger.Error("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"error", last.Err,
			)
		}
		c.JSON(status, gin.H{"message": message, "success": false})
	}
}

// Render maps err to the status and message shown to the client.
func Render(err error) (int, string) {
	var appErr *apperr.Error
	if apperr.KindOf(err) == apperr.KindInternal || !errors.As(err, &appErr) {
		return http.StatusInternalServerError, internalMessage
	}
	return appErr.Kind.Status(), appErr.Message
}

// Abort attaches err and stops the chain; ErrorHandler writes the response.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
