// This file provides scratch storage for the algorithms: size-class pools
// for short-lived digit buffers, and a stack-like arena for recursive
// algorithms that know their total scratch requirement up front.

package bigint

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Digit Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// digitPools pools []Digit slices by size class. Size classes are powers of
// 4 from 64 to 16M digits; larger requests are allocated directly.
var digitPools = [...]sync.Pool{
	{New: func() any { return make([]Digit, 64) }},
	{New: func() any { return make([]Digit, 256) }},
	{New: func() any { return make([]Digit, 1024) }},
	{New: func() any { return make([]Digit, 4096) }},
	{New: func() any { return make([]Digit, 16384) }},
	{New: func() any { return make([]Digit, 65536) }},
	{New: func() any { return make([]Digit, 262144) }},
	{New: func() any { return make([]Digit, 1048576) }},
	{New: func() any { return make([]Digit, 4194304) }},
	{New: func() any { return make([]Digit, 16777216) }},
}

// digitPoolSizes lists the capacity of each pool.
var digitPoolSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304, 16777216}

// digitPoolIndex returns the pool index for size, or -1 when size is too
// large for pooling. Size class i holds 4^(i+3) digits, so the index
// follows from the bit length of size-1.
func digitPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > digitPoolSizes[len(digitPoolSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// acquireDigits returns a zeroed slice of exactly size digits. Release it
// with releaseDigits when the operation no longer needs it:
//
//	s := acquireDigits(n)
//	defer releaseDigits(s)
func acquireDigits(size int) RWDigits {
	idx := digitPoolIndex(size)
	if idx < 0 {
		return make(RWDigits, size)
	}
	s := digitPools[idx].Get().([]Digit)
	s = s[:size]
	clear(s)
	return RWDigits(s)
}

// releaseDigits returns a slice obtained from acquireDigits to its pool.
// Slices that were allocated directly are left to the garbage collector.
func releaseDigits(s RWDigits) {
	if s == nil {
		return
	}
	c := cap(s)
	idx := digitPoolIndex(c)
	if idx >= 0 && digitPoolSizes[idx] == c {
		digitPools[idx].Put([]Digit(s[:c]))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Scratch Arena
// ─────────────────────────────────────────────────────────────────────────────

// arena hands out zeroed digit slices from one pooled buffer. Allocation is
// a bump of the offset; mark and reset release everything allocated after a
// mark, which matches the call structure of recursive algorithms. When the
// buffer is exhausted the arena falls back to make, so an underestimated
// capacity costs performance but never correctness.
type arena struct {
	buf      RWDigits
	offset   int
	borrowed bool
}

// newArena returns an arena backed by a pooled buffer of capacity digits.
func newArena(capacity int) *arena {
	return &arena{buf: acquireDigits(capacity)}
}

// arenaOver returns an arena over caller-provided scratch. release leaves
// the buffer with the caller.
func arenaOver(buf RWDigits) *arena {
	return &arena{buf: buf, borrowed: true}
}

// alloc returns n zeroed digits.
func (a *arena) alloc(n int) RWDigits {
	if a.offset+n > len(a.buf) {
		return make(RWDigits, n)
	}
	s := a.buf[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	clear(s)
	return s
}

// mark returns the current allocation offset.
func (a *arena) mark() int { return a.offset }

// reset releases every slice allocated since mark m.
func (a *arena) reset(m int) { a.offset = m }

// release returns the backing buffer to its pool.
func (a *arena) release() {
	if !a.borrowed {
		releaseDigits(a.buf)
	}
	a.buf = nil
	a.offset = 0
}
