package service

import (
	"errors"
	"fmt"
)

// ErrNilDependency is returned by constructors when a required collaborator is missing.
var ErrNilDependency = errors.New("required dependency is nil")

// ServiceError wraps an unexpected failure of a collaborator (usually a store)
// with the service and operation that observed it.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Err:       err,
	}
}
