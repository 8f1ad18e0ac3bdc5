package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorHandler renders every unhandled error as a gateway envelope. Gate
// denials and validation failures arrive as *echo.HTTPError with their
// transport status already decided; anything else is an uncaught failure and
// becomes MessageCode "500".
//
// The debug block (error kind, message, stack for panics) is attached only
// when exposeDebug is set, which the server enables outside production.
func ErrorHandler(logger zerolog.Logger, exposeDebug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]any{
				"MessageCode": strconv.Itoa(he.Code),
				"Message":     msg,
			})
			return
		}

		rid, _ := c.Get("request_id").(string)
		logger.Error().
			Err(err).
			Str("request_id", rid).
			Str("path", c.Request().URL.Path).
			Msg("uncaught failure")

		body := map[string]any{
			"MessageCode": "500",
			"Message":     "Internal Server Error",
		}
		if exposeDebug {
			debug := map[string]any{
				"error_type":    fmt.Sprintf("%T", err),
				"error_message": err.Error(),
			}
			var pe *PanicError
			if errors.As(err, &pe) {
				debug["traceback"] = string(pe.Stack)
			}
			body["debug"] = debug
		}
		_ = c.JSON(http.StatusInternalServerError, body)
	}
}
