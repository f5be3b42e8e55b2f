package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks permission for the attempted operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with current resource state")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrRateUnavailable indicates that no usable exchange rate could be obtained.
// It is fatal to the operation that needed the rate; nothing is persisted.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrPartialProvision indicates that tenant provisioning completed its first
// phase but failed before the second phase committed. The tenant is left in
// PENDING status with an owner membership and must be resumed, not re-created.
var ErrPartialProvision = errors.New("tenant provisioning incomplete")

// ErrAuditWrite indicates that an audit event could not be recorded after the
// primary write already committed. It is reported, never propagated.
var ErrAuditWrite = errors.New("audit write failed")

// AppError carries an HTTP-ish status code alongside a message and cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewConflictError creates an AppError that matches ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}

// PartialProvisionError reports a tenant stuck between provisioning phases.
// It matches ErrPartialProvision via errors.Is and carries the tenant ID so
// callers can resume provisioning instead of re-running phase 1.
type PartialProvisionError struct {
	TenantID string
	Err      error
}

func (e *PartialProvisionError) Error() string {
	return fmt.Sprintf("tenant %s provisioning incomplete: %v", e.TenantID, e.Err)
}

func (e *PartialProvisionError) Unwrap() error {
	return e.Err
}

func (e *PartialProvisionError) Is(target error) bool {
	return target == ErrPartialProvision
}
