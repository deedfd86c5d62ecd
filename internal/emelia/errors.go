package emelia

import "fmt"

// ErrorKind distinguishes the dispatcher's failure classes. Handlers only
// branch on nil/non-nil; the kind exists so logs and tests keep the
// distinction between a missing key, a dead network, a non-2xx status and
// an unparseable body.
type ErrorKind int

const (
	ErrUnauthenticated ErrorKind = iota
	ErrTransport
	ErrStatus
	ErrDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnauthenticated:
		return "unauthenticated"
	case ErrTransport:
		return "transport"
	case ErrStatus:
		return "status"
	case ErrDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError is the single error type the dispatcher returns. Status is only
// set for ErrStatus.
type APIError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrUnauthenticated:
		return "emelia: no API key set"
	case ErrStatus:
		return fmt.Sprintf("emelia: API returned status %d", e.Status)
	default:
		return fmt.Sprintf("emelia: %s error: %v", e.Kind, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf returns the dispatcher failure class of err, or -1 if err is not
// an *APIError.
func KindOf(err error) ErrorKind {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Kind
	}
	return ErrorKind(-1)
}
