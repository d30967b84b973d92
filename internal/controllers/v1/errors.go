package v1

import (
	"errors"
	"net/http"

	"github.com/financegenie/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the transaction date must not be in the future"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errNotAuthenticated   = errors.New("you need to be logged in for this")
	errInvalidCredentials = errors.New("the username or password is incorrect")
	errEmailInvalid       = errors.New("the email address is not valid")
)

// Transaction errors
var (
	errTransactionDateFuture  = errors.New("the transaction date must not be in the future")
	errTransactionDateInvalid = errors.New("the date filter must be formatted as YYYY-MM-DD")
)
