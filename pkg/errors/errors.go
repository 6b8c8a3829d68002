package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when client input fails validation
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrGateway is returned when the billing gateway rejects a call or answers
// with an unusable payload. Status and Body carry the upstream response
// verbatim so handlers can echo it instead of synthesizing a generic 500.
type ErrGateway struct {
	Status  int
	Body    string
	Message string
}

func (e *ErrGateway) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway returned %d: %s", e.Status, e.Body)
}

// ErrPersistence is returned when a document-store write fails. The caller
// only gets a retry signal; details stay in the logs.
type ErrPersistence struct {
	Op string
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("persistence failed: %s", e.Op)
}
