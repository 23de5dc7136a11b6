package storage

import (
	"context"
	"sync"
)

// MemoryKV keeps values in process memory. It backs --ephemeral runs and
// lets tests inspect exactly what was written.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	writes int
	// FailWrites, when set, is returned by Set and nothing is stored.
	FailWrites error
	// FailReads, when set, is returned by Get.
	FailReads error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return "", false, m.FailReads
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Raw returns the stored blob for key without decoding.
func (m *MemoryKV) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
