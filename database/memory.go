package database

import (
	"encoding/json"
	"log"
	"sync"
)

// Memory is an in-process Store. It backs tests and any host that wants
// state without a data directory.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Load(key string, dest interface{}) bool {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("Discarding corrupt value for %s: %v", key, err)
		return false
	}
	return true
}

func (m *Memory) Save(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to serialize %s: %v", key, err)
		return
	}
	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
}

func (m *Memory) Clear() {
	for _, key := range Keys {
		m.Remove(key)
	}
}

func (m *Memory) Available() bool {
	return true
}

// disabled is the Store used when no writable medium exists. Reads return
// defaults and writes vanish, mirroring a non-browser execution context.
type disabled struct{}

func Disabled() Store {
	return disabled{}
}

func (disabled) Load(string, interface{}) bool { return false }
func (disabled) Save(string, interface{})      {}
func (disabled) Remove(string)                 {}
func (disabled) Clear()                        {}
func (disabled) Available() bool               { return false }
