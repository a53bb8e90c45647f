// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"fmt"
	"strings"

	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
	"github.com/gomlx/exceptions"
)

// backendAgnosticSlot is the index in nonFallthroughKeysPerBackend used for key sets without any backend bit.
const backendAgnosticSlot = NumBackends

// DispatchKeyExtractor computes, for each call of an operator, the DispatchKeySet to dispatch on.
//
// It holds two pieces of state:
//
//   - Which argument positions carry dispatch keys (derived from the schema).
//   - Which functionalities have a non-fallthrough kernel for this operator. Functionalities whose kernel is a
//     fallthrough are masked out of the computed key set, so dispatch skips them without a call.
//
// Fallthrough state is kept globally (nonFallthroughKeys) and per backend (nonFallthroughKeysPerBackend).
// The per-backend array is only consulted when backends disagree about some per-backend functionality
// (requiresBitsetPerBackend), which is the uncommon case.
//
// The per-backend array has NumBackends+1 entries: the last one is used for key sets that have no backend bit.
// Singleton functionalities update every entry, per-backend ones only the entry of their backend.
//
// DispatchKeyExtractor is a plain value: copying it copies the whole state. It is not safe for concurrent
// mutation, see OperatorHandle for how it is published to concurrent callers.
type DispatchKeyExtractor struct {
	dispatchArgIndicesReverse    ArgBitset
	nonFallthroughKeys           DispatchKeySet
	nonFallthroughKeysPerBackend [NumBackends + 1]DispatchKeySet
	requiresBitsetPerBackend     bool
}

// MakeDispatchKeyExtractor returns an extractor for schema, with no fallthrough registered.
func MakeDispatchKeyExtractor(schema *FunctionSchema) DispatchKeyExtractor {
	e := MakeDispatchKeyExtractorUninitialized()
	e.RegisterSchema(schema)
	return e
}

// MakeDispatchKeyExtractorUninitialized returns an extractor without a schema: no argument is considered
// for dispatch until RegisterSchema is called.
func MakeDispatchKeyExtractorUninitialized() DispatchKeyExtractor {
	e := DispatchKeyExtractor{nonFallthroughKeys: FullKeySet()}
	for i := range e.nonFallthroughKeysPerBackend {
		e.nonFallthroughKeysPerBackend[i] = FullKeySet()
	}
	return e
}

// RegisterSchema sets the argument positions to dispatch on from schema.
func (e *DispatchKeyExtractor) RegisterSchema(schema *FunctionSchema) {
	e.dispatchArgIndicesReverse = MakeBitsetForDispatchArgs(schema)
}

// DeregisterSchema clears the argument positions: no argument is considered for dispatch afterwards.
func (e *DispatchKeyExtractor) DeregisterSchema() {
	e.dispatchArgIndicesReverse = 0
}

// DispatchArgIndicesReverse returns the argument bitset derived from the schema.
func (e *DispatchKeyExtractor) DispatchArgIndicesReverse() ArgBitset {
	return e.dispatchArgIndicesReverse
}

// GetDispatchKeySetBoxed computes the key set for a call with the given arguments, in schema order.
//
// Only arguments whose position is marked in the schema contribute keys. If fewer arguments than the schema
// declares are given, the missing ones are taken as the first (leading) arguments, as if trailing arguments
// were at the top of the stack.
func (e *DispatchKeyExtractor) GetDispatchKeySetBoxed(local LocalDispatchKeySet, args []any) DispatchKeySet {
	raw := EmptyKeySet
	n := len(args)
	e.dispatchArgIndicesReverse.ForEachReversed(func(reverseIdx int) {
		if reverseIdx >= n {
			return
		}
		raw = raw.Union(keySetOfArg(args[n-1-reverseIdx]))
	})
	return e.ComputeDispatchKeySet(local, raw)
}

// GetDispatchKeySetUnboxed computes the key set for a call from the key sets of its dispatch-relevant arguments.
func (e *DispatchKeyExtractor) GetDispatchKeySetUnboxed(local LocalDispatchKeySet, keySets ...DispatchKeySet) DispatchKeySet {
	raw := EmptyKeySet
	for _, ks := range keySets {
		raw = raw.Union(ks)
	}
	return e.ComputeDispatchKeySet(local, raw)
}

// ComputeDispatchKeySet applies the local included/excluded keys to raw, and then masks out the
// functionalities whose kernels are fallthroughs.
func (e *DispatchKeyExtractor) ComputeDispatchKeySet(local LocalDispatchKeySet, raw DispatchKeySet) DispatchKeySet {
	ks := raw.Union(local.Included).Sub(local.Excluded.Functionalities())
	return e.maskFallthroughs(ks)
}

// maskFallthroughs removes the fallthrough functionalities from ks. The global mask is used unless backends
// disagree, in which case the mask of ks' highest backend is used.
func (e *DispatchKeyExtractor) maskFallthroughs(ks DispatchKeySet) DispatchKeySet {
	if !e.requiresBitsetPerBackend {
		return ks.Intersect(e.nonFallthroughKeys)
	}
	idx := ks.BackendIndex()
	if idx < 0 {
		idx = backendAgnosticSlot
	}
	return ks.Intersect(e.nonFallthroughKeysPerBackend[idx])
}

// SetOperatorHasFallthroughForKey records whether the kernel for the runtime key k is a fallthrough.
//
// Undefined has no bit and is ignored. It panics for alias keys and for per-backend functionality keys
// without a backend (e.g. Dense): those must be expanded to runtime keys by the caller.
func (e *DispatchKeyExtractor) SetOperatorHasFallthroughForKey(k DispatchKey, hasFallthrough bool) {
	if k == Undefined {
		return
	}
	if IsAliasDispatchKey(k) {
		exceptions.Panicf("SetOperatorHasFallthroughForKey(%s): alias keys must be expanded to runtime keys", k)
	}
	functionality := ToFunctionalityKey(k)
	if !IsPerBackendFunctionalityKey(functionality) {
		// Singleton functionality: every backend agrees, the global and per-backend sets move in lock-step.
		e.nonFallthroughKeys = toggle(e.nonFallthroughKeys, k, hasFallthrough)
		for i := range e.nonFallthroughKeysPerBackend {
			e.nonFallthroughKeysPerBackend[i] = toggle(e.nonFallthroughKeysPerBackend[i], k, hasFallthrough)
		}
		return
	}

	backend := ToBackendComponent(k)
	if !backend.IsValid() {
		exceptions.Panicf("SetOperatorHasFallthroughForKey(%s): per-backend functionality requires a backend", k)
	}
	// The global set follows the latest toggle: it is only used when all backends agree, and the toggle that
	// makes them agree carries the agreed value.
	e.nonFallthroughKeys = toggle(e.nonFallthroughKeys, k, hasFallthrough)
	idx := backend.Index()
	e.nonFallthroughKeysPerBackend[idx] = toggle(e.nonFallthroughKeysPerBackend[idx], k, hasFallthrough)
	e.requiresBitsetPerBackend = false
	for i := 0; i < NumBackends-1; i++ {
		if !e.nonFallthroughKeysPerBackend[i].Equal(e.nonFallthroughKeysPerBackend[i+1]) {
			e.requiresBitsetPerBackend = true
			break
		}
	}
}

// toggle removes (fallthrough) or adds (real kernel) the functionality of k.
// Backend bits are never cleared, only functionality bits.
func toggle(ks DispatchKeySet, k DispatchKey, hasFallthrough bool) DispatchKeySet {
	if hasFallthrough {
		return ks.Remove(k)
	}
	return ks.Add(k)
}

// NonFallthroughKeys returns the functionalities with a non-fallthrough kernel, as agreed by all backends.
func (e *DispatchKeyExtractor) NonFallthroughKeys() DispatchKeySet {
	return e.nonFallthroughKeys
}

// NonFallthroughKeysForBackend returns the non-fallthrough set for the backend with the given zero-based index.
// Index NumBackends is the backend-agnostic entry.
func (e *DispatchKeyExtractor) NonFallthroughKeysForBackend(idx int) DispatchKeySet {
	return e.nonFallthroughKeysPerBackend[idx]
}

// RequiresBitsetPerBackend returns whether some backends disagree on which functionalities are fallthrough.
func (e *DispatchKeyExtractor) RequiresBitsetPerBackend() bool {
	return e.requiresBitsetPerBackend
}

// CheckInvariants panics if the argument bitset is stale with respect to schema.
// It's a consistency check for the registration layer, never called on the dispatch path.
func (e *DispatchKeyExtractor) CheckInvariants(schema *FunctionSchema) {
	want := MakeBitsetForDispatchArgs(schema)
	if want != e.dispatchArgIndicesReverse {
		exceptions.Panicf("DispatchKeyExtractor for %s: stale argument bitset %s, schema gives %s",
			schema.OperatorName, e.dispatchArgIndicesReverse, want)
	}
}

// DumpState returns a human-readable description of the extractor state: the argument bitset and the
// fallthrough functionalities (per backend, if they disagree).
func (e *DispatchKeyExtractor) DumpState() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "dispatch args (reversed): %s\n", e.dispatchArgIndicesReverse)
	_, _ = fmt.Fprintf(&sb, "fallthrough: [%s]\n", fallthroughNames(e.nonFallthroughKeys))
	_, _ = fmt.Fprintf(&sb, "requires bitset per backend: %v\n", e.requiresBitsetPerBackend)
	if e.requiresBitsetPerBackend {
		for i, b := range Backends() {
			_, _ = fmt.Fprintf(&sb, "  %s: [%s]\n", b, fallthroughNames(e.nonFallthroughKeysPerBackend[i]))
		}
	}
	return sb.String()
}

// fallthroughNames lists the functionalities missing from the non-fallthrough set.
func fallthroughNames(nonFallthrough DispatchKeySet) string {
	var names []string
	for f := Dense; f < EndOfFunctionalityKeys; f++ {
		if !nonFallthrough.HasAll(KeySetOf(f)) {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, " ")
}
