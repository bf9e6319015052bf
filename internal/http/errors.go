package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "task-market.com/task-market/internal/data_models"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/metrics"
)

// ErrorHandler renders every handler error as an ErrorResponse. Engine
// exceptions keep their own status code and kind; anything else is a 500.
func ErrorHandler(log logrus.FieldLogger, m *metrics.Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status == http.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).WithError(err).Error("request failed")
		}
		m.Error(body.Kind)

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Error("failed to write error response")
		}
	}
}

func render(err error) (int, dto.ErrorResponse) {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.StatusCode, dto.ErrorResponse{
			Code:    appErr.Code,
			Kind:    string(appErr.Kind),
			Message: appErr.Message,
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, dto.ErrorResponse{
			Code:    "http_error",
			Kind:    kindForStatus(he.Code),
			Message: fmt.Sprint(he.Message),
		}
	}

	return http.StatusInternalServerError, dto.ErrorResponse{
		Code:    "internal_error",
		Kind:    string(apperrors.KindInternal),
		Message: "internal server error",
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(apperrors.KindNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return string(apperrors.KindUnauthorized)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(apperrors.KindValidation)
	case http.StatusConflict, http.StatusTooManyRequests:
		return string(apperrors.KindConflict)
	default:
		return string(apperrors.KindInternal)
	}
}
