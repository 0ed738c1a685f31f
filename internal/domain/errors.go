package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrAlreadyExists          = errors.New("already exists")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrUnsupported            = errors.New("unsupported operation")
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrDependencyUnavailable  = errors.New("dependency unavailable")
	ErrMalformedReferenceList = errors.New("malformed order reference list")
)

type unavailableError struct {
	kind  error
	cause error
}

func (e *unavailableError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *unavailableError) Unwrap() error { return e.cause }

func (e *unavailableError) Is(target error) bool { return target == e.kind }

// StoreUnavailable wraps a driver or connection failure so callers can match
// it with errors.Is(err, ErrStoreUnavailable) while keeping the cause.
func StoreUnavailable(cause error) error {
	if cause == nil {
		return nil
	}
	return &unavailableError{kind: ErrStoreUnavailable, cause: cause}
}

// DependencyUnavailable wraps a transport-level failure talking to another
// backend. It signals systemic failure, not missing data.
func DependencyUnavailable(cause error) error {
	if cause == nil {
		return nil
	}
	return &unavailableError{kind: ErrDependencyUnavailable, cause: cause}
}
