package api

import "fmt"

// TransportError is the single failure kind the client reports: the endpoint
// was unreachable, replied with a non-2xx status, or returned a body that does
// not decode into investment records. Callers display it as-is; nothing in
// this package retries.
type TransportError struct {
	Err    error
	Op     string
	Status int // HTTP status code, 0 when no response arrived
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
