package backend

import (
	"sync"

	"gsettings-codegen/variant"
)

// MemoryStore is an in-process Store. Values are held in their text
// serialization, so every read and write round-trips through the same
// encoding a persistent backend would use.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	nextSub int
}

type memEntry struct {
	sig      string
	text     string
	writable bool
	subs     map[int]func(variant.Value)
}

// NewMemoryStore returns an empty MemoryStore. Keys must be seeded
// before use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memEntry)}
}

// Seed declares a key with its default value. Writable controls whether
// later SetValue calls are applied.
func (s *MemoryStore) Seed(key string, def variant.Value, writable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &memEntry{
		sig:      def.Signature(),
		text:     def.Text(),
		writable: writable,
		subs:     make(map[int]func(variant.Value)),
	}
}

// Value implements Store.
func (s *MemoryStore) Value(key string) variant.Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return variant.Value{}
	}

	v, err := variant.Parse(e.sig, e.text)
	if err != nil {
		return variant.Value{}
	}

	return v
}

// SetValue implements Store.
func (s *MemoryStore) SetValue(key string, v variant.Value) bool {
	s.mu.Lock()

	e, ok := s.entries[key]
	if !ok || !e.writable || e.sig != v.Signature() {
		s.mu.Unlock()
		return false
	}

	e.text = v.Text()

	var subs []func(variant.Value)
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}

	s.mu.Unlock()

	// Callbacks run outside the lock so they may read the store.
	for _, fn := range subs {
		fn(v)
	}

	return true
}

// Writable implements Store.
func (s *MemoryStore) Writable(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]

	return ok && e.writable
}

// Subscribe implements Store.
func (s *MemoryStore) Subscribe(key string, fn func(variant.Value)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return func() {}
	}

	id := s.nextSub
	s.nextSub++
	e.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(e.subs, id)
	}
}

// Bind implements Store.
func (s *MemoryStore) Bind(key string, target Binder, property string) (cancel func()) {
	target.SetProperty(property, s.Value(key))

	cancelStore := s.Subscribe(key, func(v variant.Value) {
		if !target.Property(property).Equal(v) {
			target.SetProperty(property, v)
		}
	})

	cancelTarget := func() {}

	if n, ok := target.(Notifier); ok {
		cancelTarget = n.ConnectPropertyChanged(property, func(v variant.Value) {
			if !s.Value(key).Equal(v) {
				s.SetValue(key, v)
			}
		})
	}

	return func() {
		cancelStore()
		cancelTarget()
	}
}

// CreateAction implements Store.
func (s *MemoryStore) CreateAction(key string) *Action {
	return &Action{name: key, key: key, store: s}
}
