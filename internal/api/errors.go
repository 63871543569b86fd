package api

import "fmt"

// NetworkError means the transport never reached the server. It is
// distinguishable from every HTTP-level failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot connect to server: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is any non-2xx response not classified more specifically.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d: %s", e.Status, e.Body)
}

// ValidationError is a 400-class rejection. Message carries the
// server-supplied text when the server sent one.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "validation error"
	}
	return e.Message
}

// NotFoundError is a 404 on update or delete of a vanished resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}
