package cache

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

type pair[K comparable, V any] struct {
	key   K
	value V
	seq   uint64
}

// snapshot copies the live pairs in insertion order.
func (c *Cache[K, V]) snapshot() []pair[K, V] {
	c.mu.RLock()
	out := make([]pair[K, V], 0, len(c.items))
	for k, e := range c.items {
		out = append(out, pair[K, V]{key: k, value: e.value, seq: e.seq})
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b pair[K, V]) int { return cmp.Compare(a.seq, b.seq) })
	return out
}

// All returns the pairs stored at the time of the call, oldest insertion
// first. Later mutations do not affect the sequence, and ranging over it
// again yields the same pairs. It neither counts reads nor sweeps.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	snap := c.snapshot()
	return func(yield func(K, V) bool) {
		for _, p := range snap {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}

// Keys is All restricted to keys.
func (c *Cache[K, V]) Keys() iter.Seq[K] {
	snap := c.snapshot()
	return func(yield func(K) bool) {
		for _, p := range snap {
			if !yield(p.key) {
				return
			}
		}
	}
}

// Values is All restricted to values.
func (c *Cache[K, V]) Values() iter.Seq[V] {
	snap := c.snapshot()
	return func(yield func(V) bool) {
		for _, p := range snap {
			if !yield(p.value) {
				return
			}
		}
	}
}

func (c *Cache[K, V]) String() string {
	var b strings.Builder
	b.WriteString("Cache[")
	for i, p := range c.snapshot() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v:%v", p.key, p.value)
	}
	b.WriteByte(']')
	return b.String()
}
