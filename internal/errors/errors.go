// Package errors defines the domain error types shared across services
// and handlers.
package errors

// DomainError is a user-correctable error. Handlers translate it to a
// 400 response; anything else becomes a 500.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
