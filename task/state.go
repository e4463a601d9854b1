package task

// This file implements the packed state representation and the state
// registry.
//
// Variables are greedily bin-packed into 32-bit words by needed bit width:
// we walk variables in order and place each one in the current word if it
// fits, otherwise start a new word. This is computed once per TaskModel
// (newPacking) and shared by every State the registry interns, the same
// "compute once, share read-only" approach used for Graph.Stats()
// snapshots elsewhere in this codebase — except here the computed artifact
// is consulted on every single Pack/Unpack call, not just diagnostics.

import (
	"math/bits"
)

// varSlot records where variable v's value lives within a packed state:
// word index, bit offset within that word, and a precomputed mask.
type varSlot struct {
	word   int
	offset uint
	mask   uint32
}

// packing is the precomputed, immutable bin-packing layout for a
// TaskModel's variables.
type packing struct {
	slots    []varSlot
	numWords int
}

func bitsNeeded(domainSize int32) uint {
	if domainSize <= 1 {
		return 1
	}
	return uint(bits.Len32(uint32(domainSize - 1)))
}

// newPacking greedily bin-packs variables into 32-bit words in variable
// order: a variable is placed in the current word if its bit width fits in
// the remaining space, otherwise a new word is started. This is the
// greedy bin-pack-by-needed-bit-width scheme.
func newPacking(vars []Variable) *packing {
	p := &packing{slots: make([]varSlot, len(vars))}
	const wordBits = 32
	word := 0
	used := uint(0)
	for v := range vars {
		need := bitsNeeded(vars[v].DomainSize)
		if used+need > wordBits {
			word++
			used = 0
		}
		p.slots[v] = varSlot{
			word:   word,
			offset: used,
			mask:   uint32(1)<<need - 1,
		}
		used += need
	}
	if len(vars) > 0 {
		p.numWords = word + 1
	}
	return p
}

// PackedState is the fixed-size packed representation of a full variable
// assignment: a slice of 32-bit words, shared layout across every state of
// one TaskModel. Two PackedState values compare equal iff they encode the
// same assignment; equal assignments also hash equal.
type PackedState struct {
	words []uint32
}

// Pack encodes values (indexed by variable) into a fresh PackedState using
// this TaskModel's bin-packing layout.
func (tm *TaskModel) Pack(values []int32) PackedState {
	p := tm.packing
	ps := PackedState{words: make([]uint32, p.numWords)}
	for v, val := range values {
		slot := p.slots[v]
		ps.words[slot.word] |= (uint32(val) & slot.mask) << slot.offset
	}
	return ps
}

// Unpack decodes a PackedState back into a values slice indexed by
// variable. Unpacking is cheap and side-effect-free
func (tm *TaskModel) Unpack(ps PackedState) []int32 {
	p := tm.packing
	values := make([]int32, len(tm.Variables))
	for v := range tm.Variables {
		slot := p.slots[v]
		values[v] = int32((ps.words[slot.word] >> slot.offset) & slot.mask)
	}
	return values
}

// packedEqual and packedHash operate purely on the packed words: equal
// states hash equal, but distinct states may collide, so the hash only
// picks a bucket and packedEqual decides.
func packedEqual(a, b PackedState) bool {
	if len(a.words) != len(b.words) {
		return false
	}
	for i := range a.words {
		if a.words[i] != b.words[i] {
			return false
		}
	}
	return true
}

func packedHash(ps PackedState) uint64 {
	// FNV-1a over the word slice, reinterpreted as bytes via shifts to
	// avoid unsafe — deterministic and collision-resistant enough for an
	// interning table keyed on exact equality anyway (hash only buckets).
	var h uint64 = 14695981039346656037
	for _, w := range ps.words {
		for shift := 0; shift < 32; shift += 8 {
			h ^= uint64((w >> uint(shift)) & 0xff)
			h *= 1099511628211
		}
	}
	return h
}

// StateID is a dense, registry-assigned identifier for an interned state.
// IDs are assigned in insertion order.
type StateID int32

const NoStateID StateID = -1

// StateRegistry interns PackedState values and hands out dense StateIDs.
// It exclusively owns the packed buffers; State values obtained via Lookup
// are read-only views with a back-reference to the registry. Not safe for
// concurrent use — each search engine owns one registry.
type StateRegistry struct {
	tm      *TaskModel
	buckets map[uint64][]StateID
	states  []PackedState
}

// NewStateRegistry creates an empty registry bound to tm.
func NewStateRegistry(tm *TaskModel) *StateRegistry {
	return &StateRegistry{
		tm:      tm,
		buckets: make(map[uint64][]StateID),
	}
}

// Intern looks up values' packed encoding, returning its existing StateID
// if already known or interning a fresh one (assigned the next dense ID).
func (r *StateRegistry) Intern(values []int32) StateID {
	ps := r.tm.Pack(values)
	h := packedHash(ps)
	for _, id := range r.buckets[h] {
		if packedEqual(r.states[id], ps) {
			return id
		}
	}
	id := StateID(len(r.states))
	r.states = append(r.states, ps)
	r.buckets[h] = append(r.buckets[h], id)
	return id
}

// Lookup returns a State view over a previously-interned StateID.
func (r *StateRegistry) Lookup(id StateID) State {
	return State{registry: r, id: id}
}

// Len returns the number of distinct states interned so far.
func (r *StateRegistry) Len() int { return len(r.states) }

// State is a read-only view of one interned packed state, borrowing from
// its owning StateRegistry. It never copies the packed buffer.
type State struct {
	registry *StateRegistry
	id       StateID
}

// ID returns this state's dense registry identifier.
func (s State) ID() StateID { return s.id }

// Values unpacks this state's full variable assignment. Allocates a fresh
// slice per call; callers on a hot path should cache the result.
func (s State) Values() []int32 {
	return s.registry.tm.Unpack(s.registry.states[s.id])
}

// Value returns the value of variable v in this state.
func (s State) Value(v int32) int32 {
	return s.Values()[v] // unpack is cheap and side-effect-free
}
