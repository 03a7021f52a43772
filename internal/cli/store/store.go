package store

import "errors"

// Durable storage keys for the session pair. The two values are always
// written and cleared together; a store never holds one without the other
// for longer than a single operation.
const (
	KeySessionID = "sessionId"
	KeyUser      = "user"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("value not found")

// Store is durable client-side key/value storage that survives process
// restarts.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Clear removes the whole session pair. Missing keys are not an error.
func Clear(s Store) error {
	if err := s.Delete(KeySessionID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := s.Delete(KeyUser); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
