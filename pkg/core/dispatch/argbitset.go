// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"math/bits"
	"strings"

	"github.com/gomlx/exceptions"
)

// MaxArguments is the maximum number of arguments an operator can have: the width of ArgBitset.
const MaxArguments = 64

// ArgBitset marks which argument positions of an operator carry dispatch keys.
//
// Positions are stored reversed: argument i of n sets bit n-1-i. Arguments are usually laid out on a stack
// with the last one on top, so bit j is the argument j positions below the top.
type ArgBitset uint64

// MakeBitsetForDispatchArgs returns the ArgBitset of the tensor-like arguments of schema.
// It panics if the schema has more than MaxArguments arguments.
func MakeBitsetForDispatchArgs(schema *FunctionSchema) ArgBitset {
	n := schema.NumArguments()
	if n > MaxArguments {
		exceptions.Panicf("operator %s has %d arguments, dispatch supports at most %d",
			schema.OperatorName, n, MaxArguments)
	}
	var bitset ArgBitset
	for i, arg := range schema.Arguments {
		if arg.Type.IsDispatchRelevant() {
			bitset = bitset.Set(n - 1 - i)
		}
	}
	return bitset
}

// Set returns a copy with bit i set.
func (b ArgBitset) Set(i int) ArgBitset {
	return b | ArgBitset(1)<<i
}

// Get returns whether bit i is set.
func (b ArgBitset) Get(i int) bool {
	return b&(ArgBitset(1)<<i) != 0
}

// Count returns the number of bits set.
func (b ArgBitset) Count() int {
	return bits.OnesCount64(uint64(b))
}

// ForEachReversed calls fn with the reversed index of every bit set, lowest first.
func (b ArgBitset) ForEachReversed(fn func(reverseIdx int)) {
	for v := uint64(b); v != 0; v &= v - 1 {
		fn(bits.TrailingZeros64(v))
	}
}

// String returns the bit pattern, highest bit first, trimmed to the highest bit set. E.g.: "101".
func (b ArgBitset) String() string {
	if b == 0 {
		return "0"
	}
	n := 64 - bits.LeadingZeros64(uint64(b))
	var sb strings.Builder
	sb.Grow(n)
	for i := n - 1; i >= 0; i-- {
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
