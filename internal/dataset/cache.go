package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/afgalvez/madrid-accidents/internal/observability"
)

// Cache memoizes prepared tables keyed by the source file's identity
// (path, modification time, size). Replacing the yearly file on disk is
// picked up on the next request; re-reads of an unchanged file are free.
type Cache struct {
	loader  *Loader
	metrics *observability.Metrics

	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *Table
	prev  *entry
	next  *entry
}

// NewCache creates a memoizing decorator around a Loader.
func NewCache(loader *Loader, maxEntries int, metrics *observability.Metrics) *Cache {
	return &Cache{
		loader:     loader,
		metrics:    metrics,
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

// Get returns the prepared table for the first existing candidate path,
// loading and memoizing it on first use. Concurrent callers for the same
// file share one load.
func (c *Cache) Get(primary, fallback string) (*Table, error) {
	path, info, err := c.loader.Resolve(primary, fallback)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())

	// The lock covers the load as well: a cold start with several
	// simultaneous requests must parse the file once, not once per caller.
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.metrics.DatasetCache.WithLabelValues("hit").Inc()
		c.moveToFront(e)
		return e.value, nil
	}
	c.metrics.DatasetCache.WithLabelValues("miss").Inc()

	table, err := c.loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.put(key, table)
	return table, nil
}

// Provider binds a Cache to the configured candidate paths, giving the HTTP
// layer a single lookup it can call per request.
type Provider struct {
	cache    *Cache
	primary  string
	fallback string
}

// NewProvider creates a Provider.
func NewProvider(cache *Cache, primary, fallback string) *Provider {
	return &Provider{cache: cache, primary: primary, fallback: fallback}
}

// Table returns the current prepared table.
func (p *Provider) Table(_ context.Context) (*Table, error) {
	return p.cache.Get(p.primary, p.fallback)
}

// CheckReadiness returns nil once a prepared table can be served.
func (p *Provider) CheckReadiness(ctx context.Context) error {
	_, err := p.Table(ctx)
	return err
}

func (c *Cache) put(key string, value *Table) {
	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *Cache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *Cache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *Cache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *Cache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
