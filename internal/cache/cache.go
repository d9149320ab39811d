// Package cache provides a size-bounded LRU cache with per-entry expiry.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string)
	Clear()
	Len() int
}

type entry[V any] struct {
	key        string
	value      V
	expiration time.Time
}

// LRUCache evicts the least recently used entry once capacity is exceeded.
// Expired entries are dropped lazily on Get and in bulk by CleanExpired.
type LRUCache[V any] struct {
	capacity  int
	items     map[string]*list.Element
	evictList *list.List
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
}

// New creates a cache. A non-positive capacity is treated as 1.
func New[V any](capacity int, ttl time.Duration) *LRUCache[V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCache[V]{
		capacity:  capacity,
		items:     make(map[string]*list.Element, capacity),
		evictList: list.New(),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (c *LRUCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := elem.Value.(*entry[V])
	if c.now().After(e.expiration) {
		c.removeElement(elem)
		return zero, false
	}

	c.evictList.MoveToFront(elem)
	return e.value, true
}

func (c *LRUCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := c.now().Add(c.ttl)

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[V])
		e.value = value
		e.expiration = expiration
		c.evictList.MoveToFront(elem)
		return
	}

	elem := c.evictList.PushFront(&entry[V]{key: key, value: value, expiration: expiration})
	c.items[key] = elem

	if c.evictList.Len() > c.capacity {
		c.removeOldest()
	}
}

func (c *LRUCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

func (c *LRUCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element, c.capacity)
	c.evictList.Init()
}

func (c *LRUCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *LRUCache[V]) removeOldest() {
	if elem := c.evictList.Back(); elem != nil {
		c.removeElement(elem)
	}
}

func (c *LRUCache[V]) removeElement(elem *list.Element) {
	c.evictList.Remove(elem)
	delete(c.items, elem.Value.(*entry[V]).key)
}

// CleanExpired removes every expired entry and returns how many were dropped.
func (c *LRUCache[V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.evictList.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*entry[V]).expiration) {
			c.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// StartCleanup runs CleanExpired every interval until ctx is done.
func (c *LRUCache[V]) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.CleanExpired()
			case <-ctx.Done():
				return
			}
		}
	}()
}
