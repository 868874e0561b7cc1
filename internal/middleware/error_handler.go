package middleware

import (
	"net/http"

	"tableScout/pkg/logger"
	jsonres "tableScout/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the central echo error handler: anything a handler did not
// map itself comes out as the standard error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error", "error", err, "path", c.Request().URL.Path)
	}

	if err := c.JSON(code, jsonres.Error(message, err.Error())); err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
