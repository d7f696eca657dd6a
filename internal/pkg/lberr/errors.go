package lberr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeColumnUnknown  = "COLUMN_UNKNOWN"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found, including the case where
	// an upload identity exists but holds zero rows: engines are never invoked on
	// empty datasets.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrColumnUnknown is returned when a requested column name is not part of the dataset contract.
	ErrColumnUnknown = New(fiber.StatusBadRequest, CodeColumnUnknown, "unknown column: the requested column is not part of the dataset")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]interface{}

type LabError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *LabError {
	return &LabError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e LabError) Msg(format string, parts ...interface{}) *LabError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e LabError) WithExtras(extras Extras) *LabError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *LabError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *LabError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
