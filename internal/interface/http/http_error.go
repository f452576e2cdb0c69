package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/luvit/moodfit/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response
// consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps a domain error to its transport representation.
// Unknown codes read as internal errors.
func fromDomainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.CodeInvalidToken:
		status = http.StatusForbidden
	case apperrors.CodeNotConfigured:
		status = http.StatusServiceUnavailable
	case apperrors.CodeLLMError:
		status = http.StatusBadGateway
	case apperrors.CodeEmptyCatalog, apperrors.CodeCacheError:
		status = http.StatusInternalServerError
	case "":
		code = "internal_error"
	}
	return &HTTPError{Status: status, Code: code, Message: errMessage(err), Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if apperrors.CodeOf(err) != "" {
		return fromDomainError(err)
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
