package cache

import (
	"fmt"
	"testing"

	"github.com/windoze95/mealhound-api/internal/models"
)

func resultList(id string) []models.Recipe {
	return []models.Recipe{{ID: id, Title: id, Source: models.SourceTheMealDB}}
}

func TestResultCache_GetMiss(t *testing.T) {
	c := NewResultCache(4)
	if _, ok := c.Get("pasta", 10); ok {
		t.Error("Get on empty cache reported a hit")
	}
}

func TestResultCache_PutAndGet(t *testing.T) {
	c := NewResultCache(4)
	c.Put("pasta", 10, resultList("a"))

	got, ok := c.Get("pasta", 10)
	if !ok {
		t.Fatal("Get missed after Put")
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Get = %+v, want the stored list", got)
	}
}

func TestResultCache_KeyIncludesLimit(t *testing.T) {
	c := NewResultCache(4)
	c.Put("pasta", 10, resultList("a"))

	if _, ok := c.Get("pasta", 5); ok {
		t.Error("Get with a different limit reported a hit")
	}
}

func TestResultCache_KeyIsCaseInsensitive(t *testing.T) {
	c := NewResultCache(4)
	c.Put("Pasta Carbonara", 10, resultList("a"))

	if _, ok := c.Get("  pasta carbonara ", 10); !ok {
		t.Error("case/whitespace variants of the same query should hit")
	}
}

func TestResultCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewResultCache(2)
	c.Put("first", 10, resultList("1"))
	c.Put("second", 10, resultList("2"))

	// Touch "first" so "second" becomes the LRU entry.
	if _, ok := c.Get("first", 10); !ok {
		t.Fatal("Get(first) missed")
	}

	c.Put("third", 10, resultList("3"))
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want capacity 2", c.Len())
	}
	if _, ok := c.Get("second", 10); ok {
		t.Error("LRU entry 'second' should have been evicted")
	}
	if _, ok := c.Get("first", 10); !ok {
		t.Error("recently used entry 'first' should have survived")
	}
}

func TestResultCache_PutSameKeyReplaces(t *testing.T) {
	c := NewResultCache(2)
	c.Put("pasta", 10, resultList("old"))
	c.Put("pasta", 10, resultList("new"))

	got, ok := c.Get("pasta", 10)
	if !ok {
		t.Fatal("Get missed")
	}
	if got[0].ID != "new" {
		t.Errorf("Get = %q, want the replaced value", got[0].ID)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 after replacing the same key", c.Len())
	}
}

func TestResultCache_NeverExceedsCapacity(t *testing.T) {
	c := NewResultCache(3)
	for i := 0; i < 20; i++ {
		c.Put(fmt.Sprintf("query-%d", i), 10, resultList(fmt.Sprintf("%d", i)))
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want the hard cap of 3", c.Len())
	}
}
