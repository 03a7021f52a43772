package store

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const service = "gearbase-cli"

// KeyringStore persists session values in the OS keychain/credential
// manager, one keyring entry per key, scoped by environment name so
// sessions against different deployments don't clobber each other.
type KeyringStore struct {
	env string
}

// NewKeyring creates a keyring-backed store for the given environment.
func NewKeyring(env string) *KeyringStore {
	return &KeyringStore{env: env}
}

func (k *KeyringStore) entry(key string) string {
	return fmt.Sprintf("%s-%s", key, k.env)
}

func (k *KeyringStore) Get(key string) (string, error) {
	value, err := keyring.Get(service, k.entry(key))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %s from keyring: %w", key, err)
	}
	return value, nil
}

func (k *KeyringStore) Set(key, value string) error {
	if err := keyring.Set(service, k.entry(key), value); err != nil {
		return fmt.Errorf("failed to save %s to keyring: %w", key, err)
	}
	return nil
}

func (k *KeyringStore) Delete(key string) error {
	if err := keyring.Delete(service, k.entry(key)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", key, err)
	}
	return nil
}
