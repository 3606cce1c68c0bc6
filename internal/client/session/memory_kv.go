package session

import "sync"

// MemoryKV is a KV that lives only as long as the process.
type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]Entry)}
}

func (m *MemoryKV) Get(key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *MemoryKV) Put(entries map[string]Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range entries {
		m.entries[k] = e
	}
	return nil
}

func (m *MemoryKV) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}
