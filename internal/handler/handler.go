package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "souq/internal/errors"
)

// errHandled signals that the failure envelope has already been
// written, so the handler must return without calling its service.
// Echo's error handler skips committed responses, so nothing else is
// written.
var errHandled = errors.New("response already written")

// bindAndValidate binds the request body into req and runs the
// validator, replying with a 400 envelope on failure. A non-nil return
// means the request is finished.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, apperrors.Fail("Invalid request body"))
		return errHandled
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, apperrors.Fail(err.Error()))
		return errHandled
	}
	return nil
}

// failFromError maps a service error to its HTTP status and envelope.
// Unknown errors collapse into a 500 with the fallback message so
// internals stay out of responses.
func failFromError(c echo.Context, err error, fallback string) error {
	status := apperrors.StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = fallback
	}
	return c.JSON(status, apperrors.Fail(message))
}
