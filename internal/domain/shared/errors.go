package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrPlanInUse           = NewDomainError("PLAN_IN_USE", "Billing plan is still referenced by one or more customers")
)

// Error codes returned by the billing engine. A configuration error aborts a
// computation because no rate can be resolved for a required category; a
// validation error aborts because the inputs themselves are malformed. Both
// are surfaced to the caller as typed results, never as generic failures.
const (
	CodeConfigurationError = "CONFIGURATION_ERROR"
	CodeValidationError    = "VALIDATION_ERROR"
)

// NewConfigurationError creates a billing configuration error
func NewConfigurationError(message string) *DomainError {
	return NewDomainError(CodeConfigurationError, message)
}

// NewValidationError creates a billing input validation error
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidationError, message)
}

// IsConfigurationError reports whether err is a billing configuration error
func IsConfigurationError(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == CodeConfigurationError
}

// IsValidationError reports whether err is a billing input validation error
func IsValidationError(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == CodeValidationError
}
