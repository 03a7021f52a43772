package store

// MemStore is an in-memory store. It does not survive restarts and exists
// for tests and ephemeral CI runs (GEARBASE_SESSION_STORE=memory).
type MemStore struct {
	values map[string]string
}

// NewMem creates an empty in-memory store.
func NewMem() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (m *MemStore) Get(key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *MemStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemStore) Delete(key string) error {
	if _, ok := m.values[key]; !ok {
		return ErrNotFound
	}
	delete(m.values, key)
	return nil
}
