package remcache

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Public operations never return these; they surface only
// through Logger/Hooks so callers keep the uniform false/miss/empty contract.
var (
	ErrInvalidKey    = errors.New("remcache: invalid key")
	ErrProducerPanic = errors.New("remcache: producer panicked")
)

// OpError annotates a store or codec failure with the operation and key
// it happened under. Used for log/hook reporting only.
type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("remcache: %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("remcache: %s %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op, key string, err error) *OpError {
	return &OpError{Op: op, Key: key, Err: err}
}
