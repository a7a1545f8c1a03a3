package tutor

import (
	"errors"
	"fmt"
)

// Kind classifies gateway failures for the session controller, which
// folds every one of them into the single status-message slot.
type Kind string

const (
	// KindUnreachable covers transport failures and 5xx responses.
	KindUnreachable Kind = "unreachable"

	// KindNotFound means the course or card identifier is unknown to
	// the backend.
	KindNotFound Kind = "not_found"

	// KindEvaluationFailed means the backend could not score the clip
	// (unintelligible audio, STT unavailable).
	KindEvaluationFailed Kind = "evaluation_failed"

	// KindUnknown is everything else (4xx we don't map, decode errors).
	KindUnknown Kind = "unknown"
)

// Error is the typed failure returned by every gateway operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from err, or KindUnknown if err is
// not a gateway error.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a KindNotFound gateway error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func unreachable(msg string, err error) *Error {
	return &Error{Kind: KindUnreachable, Message: msg, Err: err}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func evaluationFailed(msg string, err error) *Error {
	return &Error{Kind: KindEvaluationFailed, Message: msg, Err: err}
}

func unknown(msg string, err error) *Error {
	return &Error{Kind: KindUnknown, Message: msg, Err: err}
}
