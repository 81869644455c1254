// Package inthash is an open-addressing hash map from non-zero uint64 keys
// to uint64 values. It backs the handle → object-table index map of a
// document.
//
// Slots are probed linearly with wraparound. Capacity is always a power of
// two large enough that the map is at most 75% full; inserting past that
// limit doubles the capacity and re-inserts every pair. Key 0 marks an empty
// slot and cannot be stored.
package inthash

import (
	"errors"
	"math"
)

// ErrZeroKey is returned by Set for the reserved key 0.
var ErrZeroKey = errors.New("inthash: key 0 is reserved")

// ErrTooLarge is returned when the map cannot grow any further.
var ErrTooLarge = errors.New("inthash: capacity exhausted")

const (
	loadPercent = 75
	minCapacity = 8
	maxCapacity = 1 << 30
)

type bucket struct {
	key   uint64
	value uint64
}

// Map is the hash map. The zero value is not usable; call New.
// Not safe for concurrent use.
type Map struct {
	slots   []bucket
	mask    uint64
	elems   int
	resizes int
}

// Stats reports fill and growth counters.
type Stats struct {
	Elems    int
	Capacity int
	Resizes  int
	// MaxProbe is the longest probe sequence of any stored key.
	MaxProbe int
}

// New returns a map that holds n elements without resizing.
func New(n int) *Map {
	m := &Map{}
	m.alloc(capacityFor(n))
	return m
}

// capacityFor returns the smallest power of two c with n <= c*75%.
func capacityFor(n int) int {
	c := minCapacity
	for c < maxCapacity && n*100 > c*loadPercent {
		c <<= 1
	}
	return c
}

func (m *Map) alloc(c int) {
	m.slots = make([]bucket, c)
	m.mask = uint64(c - 1)
	m.elems = 0
}

// mix is a 64-bit finalizer (splitmix64). Handles are small and sequential;
// mixing spreads them over the table.
func mix(k uint64) uint64 {
	k ^= k >> 30
	k *= 0xbf58476d1ce4e5b9
	k ^= k >> 27
	k *= 0x94d049bb133111eb
	k ^= k >> 31
	return k
}

// Len returns the number of stored keys.
func (m *Map) Len() int { return m.elems }

// Cap returns the number of slots.
func (m *Map) Cap() int { return len(m.slots) }

// Get returns the value stored for key.
func (m *Map) Get(key uint64) (uint64, bool) {
	if key == 0 {
		return 0, false
	}
	i := mix(key) & m.mask
	for range len(m.slots) {
		s := &m.slots[i]
		switch s.key {
		case key:
			return s.value, true
		case 0:
			return 0, false
		}
		i = (i + 1) & m.mask
	}
	return 0, false
}

// Set stores value for key, overwriting any previous value.
func (m *Map) Set(key, value uint64) error {
	if key == 0 {
		return ErrZeroKey
	}
	for {
		i := mix(key) & m.mask
		for range len(m.slots) {
			s := &m.slots[i]
			if s.key == key {
				s.value = value
				return nil
			}
			if s.key == 0 {
				if m.overloaded(m.elems + 1) {
					break
				}
				s.key, s.value = key, value
				m.elems++
				return nil
			}
			i = (i + 1) & m.mask
		}
		// Either the map would exceed its load factor or no empty slot was
		// reachable: grow and probe again in the larger table.
		if err := m.grow(); err != nil {
			return err
		}
	}
}

func (m *Map) overloaded(n int) bool {
	return uint64(n)*100 > uint64(len(m.slots))*loadPercent
}

func (m *Map) grow() error {
	if len(m.slots) >= maxCapacity || len(m.slots) > math.MaxInt/2 {
		return ErrTooLarge
	}
	old := m.slots
	m.alloc(len(old) * 2)
	m.resizes++
	for _, s := range old {
		if s.key != 0 {
			m.insertFresh(s.key, s.value)
		}
	}
	return nil
}

// insertFresh places a key known to be absent into a table with room.
func (m *Map) insertFresh(key, value uint64) {
	i := mix(key) & m.mask
	for m.slots[i].key != 0 {
		i = (i + 1) & m.mask
	}
	m.slots[i] = bucket{key: key, value: value}
	m.elems++
}

// Reset removes every key and shrinks the table to hold n elements.
func (m *Map) Reset(n int) {
	m.alloc(capacityFor(n))
}

// Range calls fn for each pair in slot order until fn returns false.
func (m *Map) Range(fn func(key, value uint64) bool) {
	for _, s := range m.slots {
		if s.key != 0 && !fn(s.key, s.value) {
			return
		}
	}
}

// Stats returns fill and growth counters.
func (m *Map) Stats() Stats {
	st := Stats{Elems: m.elems, Capacity: len(m.slots), Resizes: m.resizes}
	for i, s := range m.slots {
		if s.key == 0 {
			continue
		}
		home := int(mix(s.key) & m.mask)
		probe := (i - home + len(m.slots)) & int(m.mask)
		st.MaxProbe = max(st.MaxProbe, probe+1)
	}
	return st
}
