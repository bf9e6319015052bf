package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/metrics"
)

// RequestMetrics counts every request by its route template, so
// /tasks/:id is one series regardless of the id.
func RequestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			code := c.Response().Status
			if err != nil {
				code = statusOf(err)
			}
			m.Request(c.Path(), c.Request().Method, strconv.Itoa(code))

			return err
		}
	}
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	if _, ok := apperrors.As(err); ok {
		return apperrors.StatusCode(err)
	}
	return http.StatusInternalServerError
}
