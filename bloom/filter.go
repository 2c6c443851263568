// Package bloom provides string deduplication backed by Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for membership tests on strings.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Add adds s to the filter.
func (f *Filter) Add(s string) {
	f.f.AddString(s)
}

// Test returns true if s might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(s string) bool {
	return f.f.TestString(s)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Set is an exact string set. The map alone decides membership; the filter
// is only a fast-path prefilter that answers most lookups of absent keys
// without touching the map.
type Set struct {
	filter *Filter
	seen   map[string]struct{}
}

// NewSet creates a Set sized for n expected items.
func NewSet(n uint) *Set {
	return &Set{
		filter: NewFilter(n, 0.01),
		seen:   make(map[string]struct{}, n),
	}
}

// Add inserts s and reports whether it was absent before.
func (s *Set) Add(key string) bool {
	if s.Contains(key) {
		return false
	}
	s.filter.Add(key)
	s.seen[key] = struct{}{}
	return true
}

// Contains reports whether key has been added.
func (s *Set) Contains(key string) bool {
	if !s.filter.Test(key) {
		return false
	}
	_, ok := s.seen[key]
	return ok
}

// Len returns the number of distinct keys added.
func (s *Set) Len() int {
	return len(s.seen)
}
