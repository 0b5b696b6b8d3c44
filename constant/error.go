package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrEmptyField
	ErrInvalidFormat
	ErrDuplicate
	ErrHashing
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:        "success",
	ErrInternal:       "error internal",
	ErrNotFound:       "data not found",
	ErrInvalidRequest: "invalid request",
	ErrEmptyField:     "field is empty",
	ErrInvalidFormat:  "field format invalid",
	ErrDuplicate:      "field value already registered",
	ErrHashing:        "password hashing failed",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:        http.StatusOK,
	ErrInternal:       http.StatusInternalServerError,
	ErrNotFound:       http.StatusNotFound,
	ErrInvalidRequest: http.StatusBadRequest,
	ErrEmptyField:     http.StatusOK,
	ErrInvalidFormat:  http.StatusOK,
	ErrDuplicate:      http.StatusOK,
	ErrHashing:        http.StatusInternalServerError,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:        "0000",
	ErrInternal:       "0001",
	ErrNotFound:       "0002",
	ErrInvalidRequest: "0003",
	ErrEmptyField:     "0004",
	ErrInvalidFormat:  "0005",
	ErrDuplicate:      "0006",
	ErrHashing:        "0007",
}
