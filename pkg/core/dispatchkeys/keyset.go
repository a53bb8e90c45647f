// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatchkeys

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"

	"github.com/gomlx/exceptions"
)

// DispatchKeySet is an immutable bitset over backends and functionalities.
//
// Layout of the 64-bit word (lowest bit first):
//
//	[ CPUBit ... PrivateUse3Bit | Dense ... TestingOnlyGenericMode | unused ]
//	  NumBackends backend bits    NumFunctionalityKeys-1 functionality bits
//
// Functionality and backend bits are two independent sub-masks. A runtime per-backend key (e.g. SparseCUDA)
// is "in" the set if both its functionality bit (Sparse) and its backend bit (CUDABit) are set. Adding it
// sets both bits, removing it clears only the functionality bit: the backend bit may still be needed by
// another per-backend functionality of the same backend.
//
// Higher bits have higher priority. Since functionality bits are above backend bits, backends never change
// which functionality wins, only which per-backend slot is used once a per-backend functionality wins.
//
// All methods return new values: DispatchKeySet is safe to copy and share across goroutines.
type DispatchKeySet struct {
	repr uint64
}

const (
	backendMask       = FullBackendMask
	functionalityMask = (uint64(1)<<(NumFunctionalityKeys-1) - 1) << NumBackends
)

// EmptyKeySet is the set with no bits.
var EmptyKeySet = DispatchKeySet{}

// functionalityBit returns the bit of the functionality key f. Undefined (and anything that is not a
// functionality key) has no bit.
func functionalityBit(f DispatchKey) uint64 {
	if f == Undefined || f >= EndOfFunctionalityKeys {
		return 0
	}
	return 1 << (NumBackends + int(f) - 1)
}

// backendBit returns the bit of backend b, 0 for InvalidBit.
func backendBit(b BackendComponent) uint64 {
	if !b.IsValid() {
		return 0
	}
	return 1 << b.Index()
}

// keyBits returns the bits representing k.
// Alias keys and Undefined have no bits: ExpandAlias must be used for aliases.
func keyBits(k DispatchKey) uint64 {
	if k < EndOfFunctionalityKeys {
		return functionalityBit(k)
	}
	if k <= EndOfRuntimeBackendKeys {
		return functionalityBit(ToFunctionalityKey(k)) | backendBit(toBackendComponent(k))
	}
	return 0
}

// KeySetOf returns a DispatchKeySet with the given keys.
// Runtime per-backend keys set both their functionality and backend bits.
func KeySetOf(keys ...DispatchKey) DispatchKeySet {
	var repr uint64
	for _, k := range keys {
		repr |= keyBits(k)
	}
	return DispatchKeySet{repr}
}

// KeySetOfBackends returns a DispatchKeySet with only the given backend bits.
func KeySetOfBackends(backends ...BackendComponent) DispatchKeySet {
	var repr uint64
	for _, b := range backends {
		repr |= backendBit(b)
	}
	return DispatchKeySet{repr}
}

// KeySetFromRaw creates a DispatchKeySet from its raw representation. Bits above the last functionality
// are dropped.
func KeySetFromRaw(repr uint64) DispatchKeySet {
	return DispatchKeySet{repr & (backendMask | functionalityMask)}
}

// FullKeySet returns the set with every functionality and backend bit.
func FullKeySet() DispatchKeySet {
	return DispatchKeySet{backendMask | functionalityMask}
}

// FullAfter returns the set with every functionality strictly below the functionality of k, plus all backends.
// Used by kernels to redispatch "below" themselves: ks.Intersect(FullAfter(AutogradOther)).
func FullAfter(k DispatchKey) DispatchKeySet {
	bit := functionalityBit(ToFunctionalityKey(k))
	if bit == 0 {
		return DispatchKeySet{backendMask}
	}
	return DispatchKeySet{(bit - 1) | backendMask}
}

// Raw returns the underlying bits.
func (ks DispatchKeySet) Raw() uint64 { return ks.repr }

// IsEmpty returns whether no bit is set, neither functionality nor backend.
func (ks DispatchKeySet) IsEmpty() bool { return ks.repr == 0 }

// Functionalities returns the set with only the functionality bits of ks.
func (ks DispatchKeySet) Functionalities() DispatchKeySet {
	return DispatchKeySet{ks.repr & functionalityMask}
}

// Backends returns the set with only the backend bits of ks.
func (ks DispatchKeySet) Backends() DispatchKeySet {
	return DispatchKeySet{ks.repr & backendMask}
}

// Add returns a copy of ks with k added.
func (ks DispatchKeySet) Add(k DispatchKey) DispatchKeySet {
	return DispatchKeySet{ks.repr | keyBits(k)}
}

// AddBackend returns a copy of ks with the backend bit of b set.
func (ks DispatchKeySet) AddBackend(b BackendComponent) DispatchKeySet {
	return DispatchKeySet{ks.repr | backendBit(b)}
}

// Remove returns a copy of ks with the functionality of k removed. Backend bits are left untouched:
// removing AutogradCPU clears AutogradFunctionality but keeps CPUBit, so CPU (Dense) is still in the set.
func (ks DispatchKeySet) Remove(k DispatchKey) DispatchKeySet {
	return DispatchKeySet{ks.repr &^ (keyBits(k) & functionalityMask)}
}

// RemoveFunctionality is an alias to Remove, to make the intent explicit at call sites.
func (ks DispatchKeySet) RemoveFunctionality(k DispatchKey) DispatchKeySet {
	return ks.Remove(k)
}

// RemoveBackend returns a copy of ks with the backend bit of b cleared.
func (ks DispatchKeySet) RemoveBackend(b BackendComponent) DispatchKeySet {
	return DispatchKeySet{ks.repr &^ backendBit(b)}
}

// Has returns whether k is in the set. For runtime per-backend keys both the functionality and backend
// bits must be set.
//
// It panics for Undefined and alias keys, which are never members of a runtime set: use
// RuntimeDispatchKeySetHas for aliases.
func (ks DispatchKeySet) Has(k DispatchKey) bool {
	bits := keyBits(k)
	if bits == 0 {
		exceptions.Panicf("DispatchKeySet.Has(%s): key has no representation in a DispatchKeySet", k)
	}
	return ks.repr&bits == bits
}

// HasBackend returns whether the backend bit of b is set.
func (ks DispatchKeySet) HasBackend(b BackendComponent) bool {
	bit := backendBit(b)
	return bit != 0 && ks.repr&bit != 0
}

// HasAll returns whether every bit of other is set in ks.
func (ks DispatchKeySet) HasAll(other DispatchKeySet) bool {
	return ks.repr&other.repr == other.repr
}

// HasAny returns whether ks and other share any functionality, and, if other has backend bits,
// whether they also share a backend.
func (ks DispatchKeySet) HasAny(other DispatchKeySet) bool {
	if other.repr&backendMask != 0 && ks.repr&other.repr&backendMask == 0 {
		return false
	}
	return ks.repr&other.repr&functionalityMask != 0
}

// IsSupersetOf returns whether ks contains every bit of other.
func (ks DispatchKeySet) IsSupersetOf(other DispatchKeySet) bool {
	return ks.HasAll(other)
}

// Union returns ks | other.
func (ks DispatchKeySet) Union(other DispatchKeySet) DispatchKeySet {
	return DispatchKeySet{ks.repr | other.repr}
}

// Intersect returns ks & other.
func (ks DispatchKeySet) Intersect(other DispatchKeySet) DispatchKeySet {
	return DispatchKeySet{ks.repr & other.repr}
}

// Sub returns ks - other, that is, the bits of ks not in other.
func (ks DispatchKeySet) Sub(other DispatchKeySet) DispatchKeySet {
	return DispatchKeySet{ks.repr &^ other.repr}
}

// Equal returns whether ks and other have exactly the same bits.
func (ks DispatchKeySet) Equal(other DispatchKeySet) bool {
	return ks.repr == other.repr
}

// HighestFunctionalityKey returns the functionality of the highest functionality bit, or Undefined if
// there is none.
func (ks DispatchKeySet) HighestFunctionalityKey() DispatchKey {
	idx := 64 - bits.LeadingZeros64(ks.repr&functionalityMask)
	if idx <= NumBackends {
		return Undefined
	}
	return DispatchKey(idx - NumBackends)
}

// HighestBackend returns the highest backend set, or InvalidBit if there is none.
func (ks DispatchKeySet) HighestBackend() BackendComponent {
	return BackendComponent(64 - bits.LeadingZeros64(ks.repr&backendMask))
}

// BackendIndex returns the zero-based index of HighestBackend, or -1 if there are no backend bits.
func (ks DispatchKeySet) BackendIndex() int {
	return ks.HighestBackend().Index()
}

// HighestPriorityKey returns the key to dispatch to: the highest functionality, combined with the highest
// backend if that functionality is per-backend.
//
// A set with only backend bits returns Undefined. A per-backend functionality without any backend bit returns
// the band start key (e.g. StartOfDenseBackends), which has no kernel slot.
//
// It panics if the set is empty: dispatch key sets must contain a valid key, and calling it on an empty
// set is a bug in the caller.
func (ks DispatchKeySet) HighestPriorityKey() DispatchKey {
	if ks.repr == 0 {
		exceptions.Panicf("DispatchKeySet.HighestPriorityKey(): dispatch key set must contain a valid key, got an empty set")
	}
	functionality := ks.HighestFunctionalityKey()
	if IsPerBackendFunctionalityKey(functionality) {
		return ToRuntimePerBackendFunctionalityKey(functionality, ks.HighestBackend())
	}
	return functionality
}

// DispatchTableIndex returns the operator table slot of HighestPriorityKey, or -1 if it has no slot.
func (ks DispatchKeySet) DispatchTableIndex() int {
	return ks.HighestPriorityKey().DispatchTableIndex()
}

// Keys iterates over the runtime keys of the set, lowest priority first.
// Per-backend functionalities yield one key per backend bit set; if no backend bit is set they yield nothing.
func (ks DispatchKeySet) Keys() iter.Seq[DispatchKey] {
	return func(yield func(DispatchKey) bool) {
		functionalities := ks.repr & functionalityMask
		for functionalities != 0 {
			idx := bits.TrailingZeros64(functionalities)
			functionalities &^= 1 << idx
			functionality := DispatchKey(idx - NumBackends + 1)
			if !IsPerBackendFunctionalityKey(functionality) {
				if !yield(functionality) {
					return
				}
				continue
			}
			backends := ks.repr & backendMask
			for backends != 0 {
				bIdx := bits.TrailingZeros64(backends)
				backends &^= 1 << bIdx
				if !yield(ToRuntimePerBackendFunctionalityKey(functionality, BackendFromIndex(bIdx))) {
					return
				}
			}
		}
	}
}

// BackendComponents iterates over the backends set, lowest first.
func (ks DispatchKeySet) BackendComponents() iter.Seq[BackendComponent] {
	return func(yield func(BackendComponent) bool) {
		backends := ks.repr & backendMask
		for backends != 0 {
			idx := bits.TrailingZeros64(backends)
			backends &^= 1 << idx
			if !yield(BackendFromIndex(idx)) {
				return
			}
		}
	}
}

// String implements fmt.Stringer. E.g.: "DispatchKeySet(CPU, AutogradCPU, Tracer)".
// Backend bits not claimed by any per-backend functionality are listed separately.
func (ks DispatchKeySet) String() string {
	var parts []string
	hasPerBackend := false
	for k := range ks.Keys() {
		parts = append(parts, k.String())
	}
	for _, band := range perBackendBands {
		if ks.repr&functionalityBit(band.functionality) != 0 {
			hasPerBackend = true
			break
		}
	}
	if !hasPerBackend && ks.repr&backendMask != 0 {
		var backends []string
		for b := range ks.BackendComponents() {
			backends = append(backends, b.String())
		}
		parts = append(parts, fmt.Sprintf("backends=[%s]", strings.Join(backends, " ")))
	}
	return "DispatchKeySet(" + strings.Join(parts, ", ") + ")"
}
