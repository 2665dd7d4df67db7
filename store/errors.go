package store

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates no post is stored under the requested run ID.
var ErrNotFound = errors.New("store: post not found")

// SerializationError wraps JSON marshaling/unmarshaling errors with context.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("store: serialization error for key %q: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// InvalidKeyError reports a key that cannot be used as a file name.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("store: invalid key %q", e.Key)
}
