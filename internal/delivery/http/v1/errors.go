package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpad/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{
		"success": false,
		"message": err.Message,
	})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// abortServiceError maps service sentinels to their status codes.
// Anything unrecognized is an internal error; the detail stays in
// the logs, not the response.
func abortServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUserIDRequired):
		abort(c, newBadRequestError(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		abort(c, newUnauthorizedError(err.Error()))
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
