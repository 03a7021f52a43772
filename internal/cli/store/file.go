package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const configDirName = "gearbase"

// FileStore persists session values in a JSON file under the user's config
// directory (~/.config/gearbase/session-<env>.json). It exists for headless
// hosts without a usable keyring; select it with GEARBASE_SESSION_STORE=file.
type FileStore struct {
	path string
}

// NewFile creates a file-backed store for the given environment.
func NewFile(env string) (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".config", configDirName)
	return &FileStore{path: filepath.Join(dir, fmt.Sprintf("session-%s.json", env))}, nil
}

// NewFileAt creates a file-backed store at an explicit path.
func NewFileAt(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) read() (map[string]string, error) {
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return values, nil
}

func (f *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session file: %w", err)
	}

	// Session credentials are secrets; keep the file owner-only.
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (f *FileStore) Get(key string) (string, error) {
	values, err := f.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *FileStore) Set(key, value string) error {
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileStore) Delete(key string) error {
	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return ErrNotFound
	}
	delete(values, key)
	return f.write(values)
}
