package common

import (
	"encoding/json"
	"go-user-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// The constructors below bind the failure taxonomy to HTTP statuses so handlers
// never pick status codes ad hoc.

// NewAuthError covers bad credentials and invalid, expired or wrong-kind tokens.
// The message must not reveal which check failed.
func NewAuthError(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

// NewNotFoundError is used where the contract promises not-found semantics,
// e.g. a login miss that must not distinguish unknown email from wrong password.
func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

// NewConflictError covers state conflicts such as an already-verified email,
// kept distinct from generic auth failures.
func NewConflictError(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

// NewDependencyError covers store or directory failures. Partial effects are
// never presented as success.
func NewDependencyError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
