package cache

import (
	"container/list"
	"sync"
)

type LRUCache[K comparable, V any] struct {
	capacity int
	cache    map[K]*list.Element
	lruList  *list.List
	mu       sync.Mutex
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	return &LRUCache[K, V]{
		capacity: capacity,
		cache:    make(map[K]*list.Element),
		lruList:  list.New(),
	}
}

func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[key]; found {
		c.lruList.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

func (c *LRUCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[key]; found {
		c.lruList.MoveToFront(elem)
		elem.Value.(*entry[K, V]).value = value
		return
	}

	elem := c.lruList.PushFront(&entry[K, V]{key, value})
	c.cache[key] = elem

	if c.lruList.Len() > c.capacity {
		c.evict()
	}
}

func (c *LRUCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.cache[key]; found {
		c.lruList.Remove(elem)
		delete(c.cache, key)
	}
}

// evict drops the least recently used entry; callers hold mu.
func (c *LRUCache[K, V]) evict() {
	elem := c.lruList.Back()
	if elem != nil {
		c.lruList.Remove(elem)
		delete(c.cache, elem.Value.(*entry[K, V]).key)
	}
}

func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}
