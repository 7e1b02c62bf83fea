package web

// Error is the web-layer error type. It carries the HTTP status the failure
// maps to and, for validation failures, the offending fields.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

// NewRequestError wraps a cause with the status it should surface as.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRequestError checks whether an error was created through NewRequestError.
func IsRequestError(err error) (*Error, bool) {
	re, ok := err.(*Error)
	return re, ok
}
