package source

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of resources a Caching provider remembers.
const DefaultCacheSize = 1024

type cachedContent struct {
	content string
	missing bool
}

// Caching memoizes another provider's answers in an LRU.
// Both hits and not-found results are remembered; other errors are not.
type Caching struct {
	next  Provider
	cache *lru.Cache[string, cachedContent]
}

// NewCaching wraps p with an LRU of the given size.
// A size of zero or less selects DefaultCacheSize.
func NewCaching(p Provider, size int) (*Caching, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cachedContent](size)
	if err != nil {
		return nil, fmt.Errorf("creating content cache: %w", err)
	}
	return &Caching{next: p, cache: cache}, nil
}

// Content implements Provider.
func (c *Caching) Content(id string) (string, error) {
	if entry, ok := c.cache.Get(id); ok {
		if entry.missing {
			return "", fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return entry.content, nil
	}

	content, err := c.next.Content(id)
	if err != nil {
		if IsNotFound(err) {
			c.cache.Add(id, cachedContent{missing: true})
		}
		return "", err
	}
	c.cache.Add(id, cachedContent{content: content})
	return content, nil
}

// Len returns the number of cached entries.
func (c *Caching) Len() int {
	return c.cache.Len()
}

// Purge drops every cached entry.
func (c *Caching) Purge() {
	c.cache.Purge()
}
