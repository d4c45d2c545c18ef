package middleware

import (
	"log/slog"
	"net/http"

	"padel-club-api/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler flushes the most recent public error recorded during the
// request as a JSON envelope, if no handler has written a body yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		// newest error wins
		for i := len(c.Errors) - 1; i >= 0; i-- {
			ginErr := c.Errors[i]
			if !ginErr.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := ginErr.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.Response{
			Status: http.StatusInternalServerError,
			Error:  httperr.ErrorBody{Message: "Internal server error"},
		})
	}
}

// Recovery converts panics into a 500 envelope instead of a dropped
// connection, logging the panic value with the request path.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("recovered from panic", "error", r, "path", c.Request.URL.Path)

				c.JSON(http.StatusInternalServerError, httperr.Response{
					Status: http.StatusInternalServerError,
					Error:  httperr.ErrorBody{Message: "Internal server error"},
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
