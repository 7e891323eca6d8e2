package collections

import (
	"cmp"
	"fmt"
	"slices"
)

// Set is a generic set data structure using a map with zero-size values
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set with the given initial values
func NewSet[T comparable](vs ...T) Set[T] {
	s := Set[T]{}
	s.Add(vs...)
	return s
}

// Add adds one or more values to the set
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has checks if the set contains the given value
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Union returns a new set holding the members of s and every other set
func (s Set[T]) Union(others ...Set[T]) Set[T] {
	r := make(Set[T], len(s))
	for v := range s {
		r[v] = struct{}{}
	}
	for _, o := range others {
		for v := range o {
			r[v] = struct{}{}
		}
	}
	return r
}

// Members returns all values in the set as a slice, in no particular order
func (s Set[T]) Members() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	return r
}

// Sorted returns the members of an ordered set in ascending order
func Sorted[T cmp.Ordered](s Set[T]) []T {
	r := s.Members()
	slices.Sort(r)
	return r
}

// String returns a string representation of the set
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}
