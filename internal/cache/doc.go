// Package cache implements a bounded, self-expiring, in-process key/value
// cache for memoization.
//
// Goals for this package:
//   - Bound the number of entries, evicting the least-used one on overflow
//   - Age entries out without a background goroutine: sweeps run inline on
//     whichever Get/Set crosses the sweep deadline
//   - Be concurrency-safe, with one lock per Cache instance
//   - Expose only the map operations the policy can honor; the underlying
//     map is never handed out
//
// Usage is a read count, not recency: Set resets it to 1, Get increments it,
// and every sweep resets all counts to 0. An entry that goes unread for two
// consecutive sweeps is removed by the second sweep.
package cache
