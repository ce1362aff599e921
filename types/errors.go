package types

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by fetchers when the provider does not know an icon id.
var ErrNotFound = errors.New("icon not found")

// ValidationError reports malformed caller input. It is raised before the
// cache or the provider is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProviderError reports an upstream failure: network, rate limit, bad
// response. Status is the upstream HTTP or API status when known.
type ProviderError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("provider %s failed (status %d): %s", e.Op, e.Status, msg)
	}
	return fmt.Sprintf("provider %s failed: %s", e.Op, msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an icon id unknown to the provider.
type NotFoundError struct {
	ID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("icon %d not found", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match a NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CapacityError reports a single entry larger than the whole memory budget.
// It never reaches callers; the value is returned uncached.
type CapacityError struct {
	Key    string
	Size   int64
	Budget int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("entry %q of %d bytes exceeds cache budget of %d bytes", e.Key, e.Size, e.Budget)
}

// AsProviderError wraps err as a *ProviderError for op unless it already is one
// or is a NotFoundError.
func AsProviderError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	return &ProviderError{Op: op, Err: err}
}
