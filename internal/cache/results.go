package cache

import (
	"container/list"
	"strconv"
	"strings"
	"sync"

	"github.com/windoze95/mealhound-api/internal/models"
)

// ResultCache memoizes final aggregated result lists per (query, limit)
// pair. It is a bounded LRU: once the capacity is reached, the least
// recently used entry is evicted. Safe for concurrent use.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type resultEntry struct {
	key     string
	recipes []models.Recipe
}

// NewResultCache creates a ResultCache holding at most capacity entries.
func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ResultCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached result list for a query and limit, if present.
func (c *ResultCache) Get(query string, maxResults int) ([]models.Recipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[resultKey(query, maxResults)]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*resultEntry).recipes, true
}

// Put stores a result list, evicting the least recently used entry when
// the cache is full. Stored lists must not be mutated afterwards.
func (c *ResultCache) Put(query string, maxResults int, recipes []models.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := resultKey(query, maxResults)
	if el, ok := c.entries[key]; ok {
		el.Value.(*resultEntry).recipes = recipes
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&resultEntry{key: key, recipes: recipes})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*resultEntry).key)
	}
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// resultKey builds a case-insensitive cache key from the query and limit.
func resultKey(query string, maxResults int) string {
	return strings.ToLower(strings.TrimSpace(query)) + "|" + strconv.Itoa(maxResults)
}
