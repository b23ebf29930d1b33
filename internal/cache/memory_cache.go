package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process LRU Cache with per-item expiration
type MemoryCache struct {
	maxItems int
	items    map[string]*list.Element
	lru      *list.List
	mu       sync.Mutex
	now      func() time.Time
}

type memoryItem struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiration
}

// NewMemoryCache creates an LRU cache holding at most maxItems values
func NewMemoryCache(maxItems int) *MemoryCache {
	if maxItems < 1 {
		maxItems = 1
	}
	return &MemoryCache{
		maxItems: maxItems,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Get retrieves a value from the cache
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, found := m.items[key]
	if !found {
		return nil, nil
	}

	item := elem.Value.(*memoryItem)
	if !item.expiresAt.IsZero() && m.now().After(item.expiresAt) {
		m.removeElement(elem)
		return nil, nil
	}

	m.lru.MoveToFront(elem)
	return append([]byte(nil), item.value...), nil
}

// Set stores a value, evicting the least recently used items when full
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = m.now().Add(expiration)
	}
	stored := append([]byte(nil), value...)

	if elem, found := m.items[key]; found {
		item := elem.Value.(*memoryItem)
		item.value = stored
		item.expiresAt = expiresAt
		m.lru.MoveToFront(elem)
		return nil
	}

	m.items[key] = m.lru.PushFront(&memoryItem{key: key, value: stored, expiresAt: expiresAt})

	for m.lru.Len() > m.maxItems {
		if oldest := m.lru.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}
	return nil
}

// Delete removes a key from the cache
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, found := m.items[key]; found {
		m.removeElement(elem)
	}
	return nil
}

// removeElement must be called with mu held
func (m *MemoryCache) removeElement(elem *list.Element) {
	item := elem.Value.(*memoryItem)
	delete(m.items, item.key)
	m.lru.Remove(elem)
}

// Len returns the number of stored items, expired ones included
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close drops all items
func (m *MemoryCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]*list.Element)
	m.lru = list.New()
	return nil
}

// Health always succeeds for the in-process cache
func (m *MemoryCache) Health(context.Context) error {
	return nil
}
