// Package storage provides the key-value string stores that task state is
// persisted to.
package storage

// KV is an opaque key-value store of strings. Get reports ok=false for a key
// that was never set.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Memory is an in-process KV. The zero value is not usable; use NewMemory.
type Memory struct {
	m map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(key, value string) error {
	s.m[key] = value
	return nil
}
