// Package cache: process-local LRU for repeated classifications.
// Background: batch callers tend to re-check the same AOI layer; a small
// in-process cache skips the geometry work. TTL bounds staleness when the
// underlying layer file changes.
package cache

import (
	"container/list"
	"sync"
	"time"

	"fs-api/internal/check"
)

type LRU struct {
	mu   sync.Mutex
	cap  int
	ttl  time.Duration
	lst  *list.List
	dict map[string]*list.Element
}

type kv struct {
	k   string
	v   check.Result
	exp time.Time
}

func NewLRU(capacity int, ttlSec int) *LRU {
	return &LRU{
		cap:  capacity,
		ttl:  time.Duration(ttlSec) * time.Second,
		lst:  list.New(),
		dict: make(map[string]*list.Element),
	}
}

func (c *LRU) Get(k string) (check.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.dict[k]; ok {
		it := e.Value.(kv)
		if time.Now().Before(it.exp) {
			c.lst.MoveToFront(e)
			return it.v, true
		}
		c.lst.Remove(e)
		delete(c.dict, k)
	}
	return check.Result{}, false
}

func (c *LRU) Set(k string, v check.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.dict[k]; ok {
		e.Value = kv{k: k, v: v, exp: time.Now().Add(c.ttl)}
		c.lst.MoveToFront(e)
		return
	}
	e := c.lst.PushFront(kv{k: k, v: v, exp: time.Now().Add(c.ttl)})
	c.dict[k] = e
	for c.lst.Len() > c.cap {
		back := c.lst.Back()
		if back != nil {
			it := back.Value.(kv)
			delete(c.dict, it.k)
			c.lst.Remove(back)
		}
	}
}
