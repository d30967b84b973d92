package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// User errors
var (
	ErrUsernameTaken = errors.New("this username is already in use")
	ErrEmailTaken    = errors.New("this email address is already in use")
)

// Transaction errors
var (
	ErrTransactionTypeInvalid     = errors.New("the transaction type must be income or expense")
	ErrTransactionCategoryInvalid = errors.New("the transaction category is not a valid category")
	ErrAmountNegative             = errors.New("the amount must not be negative")
)

// Bill errors
var (
	ErrBillStatusInvalid        = errors.New("the bill status must be pending or paid")
	ErrRecurringIntervalInvalid = errors.New("the recurring interval must be weekly, monthly, yearly or none")
)
