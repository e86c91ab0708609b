// Package failure defines the closed set of failure kinds the dashboard
// pipeline can report, so callers branch on a kind instead of a message.
package failure

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindCredentialsMissing
	KindAuthFailure
	KindConnectFailure
	KindFetchFailure
	KindRenderFailure
)

func (k Kind) String() string {
	switch k {
	case KindCredentialsMissing:
		return "credentials_missing"
	case KindAuthFailure:
		return "auth_failure"
	case KindConnectFailure:
		return "connect_failure"
	case KindFetchFailure:
		return "fetch_failure"
	case KindRenderFailure:
		return "render_failure"
	default:
		return "unknown"
	}
}

// Severity maps a kind to the notice level shown on the web page.
func (k Kind) Severity() string {
	switch k {
	case KindCredentialsMissing, KindAuthFailure:
		return "danger"
	default:
		return "warning"
	}
}

// Error is a failure tagged with its kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
