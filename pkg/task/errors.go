package task

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("invalid task")
	ErrNotFound     = errors.New("task not found")
	ErrStorageRead  = errors.New("read task storage")
	ErrStorageWrite = errors.New("write task storage")
)

// Validation failure reasons.
const (
	ReasonMissingField = "missing field"
	ReasonInvalidDate  = "invalid date"
	ReasonDateOrder    = "date order"
)

// ValidationError reports client-supplied task data that breaks a field rule.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
