package serverutils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("the requested resource was not found")
	ErrUnauthorized = errors.New("you are not authorized to access this resource")
	ErrInternal     = errors.New("something went wrong on our end, please try again later")
	ErrBadRequest   = errors.New("the request could not be processed due to invalid input")
	ErrUnavailable  = errors.New("the service is temporarily unavailable")
)

// StorageError reports a failure of the underlying persistence medium.
// Its message is logged, never sent to clients.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
