package cache

import (
	"maps"
	"slices"
	"testing"
)

func TestIteration_InsertionOrder(t *testing.T) {
	c, _ := newFakeCache[string](t, Config{MaxEntries: 10})

	if got := slices.Collect(c.Keys()); len(got) != 0 {
		t.Fatalf("keys of empty cache = %v", got)
	}

	c.Set("a", "x")
	c.Set("b", "y")
	c.Set("c", "z")

	if got, want := slices.Collect(c.Keys()), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	if got, want := slices.Collect(c.Values()), []string{"x", "y", "z"}; !slices.Equal(got, want) {
		t.Fatalf("values = %v, want %v", got, want)
	}
	if got, want := maps.Collect(c.All()), map[string]string{"a": "x", "b": "y", "c": "z"}; !maps.Equal(got, want) {
		t.Fatalf("all = %v, want %v", got, want)
	}
}

func TestIteration_SnapshotIsolation(t *testing.T) {
	c, _ := newFakeCache[int](t, Config{})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	keys := c.Keys()
	values := c.Values()

	c.Delete("a")
	c.Set("b", 20)
	c.Set("d", 4)

	want := []string{"a", "b", "c"}
	if got := slices.Collect(keys); !slices.Equal(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	// Ranging again replays the same snapshot.
	if got := slices.Collect(keys); !slices.Equal(got, want) {
		t.Fatalf("second pass keys = %v, want %v", got, want)
	}
	if got := slices.Collect(values); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("values = %v", got)
	}

	if got, want := slices.Collect(c.Keys()), []string{"c", "b", "d"}; !slices.Equal(got, want) {
		t.Fatalf("fresh keys = %v, want %v", got, want)
	}
}

func TestIteration_EarlyBreak(t *testing.T) {
	c, _ := newFakeCache[int](t, Config{})
	for i, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, i)
	}

	var seen []string
	for k, v := range c.All() {
		seen = append(seen, k)
		if v == 1 {
			break
		}
	}
	if !slices.Equal(seen, []string{"a", "b"}) {
		t.Fatalf("seen = %v", seen)
	}
}

func TestIteration_DoesNotCountReads(t *testing.T) {
	c, _ := newFakeCache[string](t, Config{MaxEntries: 2})

	c.Set("a", "x")
	c.Set("b", "y")
	for range c.All() {
	}
	for range c.Keys() {
	}
	c.Set("c", "z")

	if c.Contains("a") {
		t.Fatalf("expected a evicted; iteration must not bump usage")
	}
	if got := c.Stats().Hits; got != 0 {
		t.Fatalf("hits = %d, want 0", got)
	}
}

func TestString(t *testing.T) {
	c, _ := newFakeCache[string](t, Config{MaxEntries: 2})

	if got := c.String(); got != "Cache[]" {
		t.Fatalf("empty = %q", got)
	}
	c.Set("a", "x")
	c.Set("b", "y")
	if got := c.String(); got != "Cache[a:x b:y]" {
		t.Fatalf("string = %q", got)
	}
}
