package client

import "sync"

// SessionStore owns the bearer token lifecycle. Implementations must be safe
// for concurrent use.
type SessionStore interface {
	Token() (string, bool)
	SetToken(token string)
	Clear()
}

// MemorySessionStore keeps the token in process memory.
type MemorySessionStore struct {
	mu    sync.Mutex
	token string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (store *MemorySessionStore) Token() (string, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, store.token != ""
}

func (store *MemorySessionStore) SetToken(token string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
}

func (store *MemorySessionStore) Clear() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
}
