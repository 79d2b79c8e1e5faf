package registration

import "sync"

// Manager owns the per-student session stores. A store is created on login,
// reused across requests for the same matric number, and dropped on logout.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager() *Manager {
	return &Manager{stores: make(map[string]*Store)}
}

// Open returns the store for the matric number, creating it if this is the
// first request of the session.
func (m *Manager) Open(matric string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[matric]
	if !ok {
		store = NewStore()
		m.stores[matric] = store
	}
	return store
}

// Get returns the store for the matric number if a session exists.
func (m *Manager) Get(matric string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[matric]
	return store, ok
}

// Close tears the session down. The next login starts from a fresh store.
func (m *Manager) Close(matric string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.stores, matric)
}
