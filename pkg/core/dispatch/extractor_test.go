// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"context"
	"math/rand/v2"
	"testing"

	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noLocalKeys = LocalDispatchKeySet{}

func TestExtractorBoxed(t *testing.T) {
	e := MakeDispatchKeyExtractor(MustParseSchema(
		"test::f(Tensor a, int n, Tensor? b, Tensor[] list, Tensor?[] opt) -> Tensor"))
	args := []any{
		Tag("a", CPU),
		Tag("n", XLA), // Not a tensor position: ignored.
		nil,
		[]Keyed{Tag("l0", CUDA), nil},
		[]any{nil, Tag("o1", Tracer)},
	}
	ks := e.GetDispatchKeySetBoxed(noLocalKeys, args)
	assert.Equal(t, KeySetOf(CPU, CUDA, Tracer), ks)
	assert.Equal(t, Tracer, ks.HighestPriorityKey())

	// Fewer arguments than the schema: the trailing ones are the ones given.
	ks = e.GetDispatchKeySetBoxed(noLocalKeys, []any{[]any{Tag("o1", Python)}})
	assert.Equal(t, KeySetOf(Python), ks)

	ks = e.GetDispatchKeySetUnboxed(noLocalKeys, KeySetOf(CPU), KeySetOf(AutogradCPU))
	assert.Equal(t, AutogradCPU, ks.HighestPriorityKey())
}

func TestExtractorLocalKeys(t *testing.T) {
	e := MakeDispatchKeyExtractor(MustParseSchema("test::f(Tensor a)"))
	args := []any{Tag("a", CPU, AutogradCPU)}
	local := LocalDispatchKeySet{Included: KeySetOf(Tracer), Excluded: KeySetOf(AutogradCUDA)}
	ks := e.GetDispatchKeySetBoxed(local, args)
	// Excluding AutogradCUDA excludes the autograd functionality for every backend.
	assert.Equal(t, KeySetOf(CPU, Tracer), ks)

	ctx := WithIncludedKeys(context.Background(), Tracer)
	ctx = WithExcludedKeys(ctx, AutogradCPU)
	local = LocalKeySetFromContext(ctx)
	assert.True(t, local.Included.Has(Tracer))
	assert.True(t, local.Included.Has(BackendSelect), "default included keys are kept")
	assert.True(t, local.Excluded.Backends().IsEmpty(), "excluded keys only hold functionalities")
	assert.True(t, local.Excluded.HasAll(KeySetOf(AutogradFunctionality)))

	// Including a key removes it from the excluded set.
	ctx = WithIncludedKeys(ctx, AutocastCPU)
	local = LocalKeySetFromContext(ctx)
	assert.True(t, local.Included.Has(AutocastCPU))
	assert.False(t, local.Excluded.HasAll(KeySetOf(AutocastCPU)))
	assert.True(t, local.Excluded.HasAll(KeySetOf(AutocastCUDA)))

	assert.Equal(t, DefaultLocalDispatchKeySet, LocalKeySetFromContext(context.Background()))
}

// TestFallthroughScenario: Dense has a real kernel on CPU and fallthroughs on CUDA and XLA.
func TestFallthroughScenario(t *testing.T) {
	e := MakeDispatchKeyExtractor(MustParseSchema("test::f(Tensor a)"))
	e.SetOperatorHasFallthroughForKey(CPU, false)
	e.SetOperatorHasFallthroughForKey(CUDA, true)
	e.SetOperatorHasFallthroughForKey(XLA, true)
	require.True(t, e.RequiresBitsetPerBackend())

	ks := e.GetDispatchKeySetBoxed(noLocalKeys, []any{Tag("x", CUDA)})
	assert.True(t, ks.Functionalities().IsEmpty(), "CUDA call must have no functionality left, got %s", ks)
	assert.Equal(t, Undefined, ks.HighestPriorityKey())

	ks = e.GetDispatchKeySetBoxed(noLocalKeys, []any{Tag("x", CPU)})
	assert.Equal(t, CPU, ks.HighestPriorityKey())

	// Once CUDA and XLA get real kernels again, all backends agree.
	e.SetOperatorHasFallthroughForKey(CUDA, false)
	assert.True(t, e.RequiresBitsetPerBackend())
	e.SetOperatorHasFallthroughForKey(XLA, false)
	assert.False(t, e.RequiresBitsetPerBackend())
	assert.True(t, e.NonFallthroughKeys().HasAll(KeySetOf(Dense)))
}

func TestFallthroughSingleton(t *testing.T) {
	e := MakeDispatchKeyExtractor(MustParseSchema("test::f(Tensor a)"))
	args := []any{Tag("x", CPU, Tracer)}
	assert.Equal(t, Tracer, e.GetDispatchKeySetBoxed(noLocalKeys, args).HighestPriorityKey())
	e.SetOperatorHasFallthroughForKey(Tracer, true)
	assert.False(t, e.RequiresBitsetPerBackend(), "singleton toggles never split backends")
	assert.Equal(t, CPU, e.GetDispatchKeySetBoxed(noLocalKeys, args).HighestPriorityKey())

	// Undefined is ignored, aliases and backend-less per-backend functionalities are programming errors.
	before := e
	e.SetOperatorHasFallthroughForKey(Undefined, true)
	assert.Equal(t, before, e)
	require.Panics(t, func() { e.SetOperatorHasFallthroughForKey(Autograd, true) })
	require.Panics(t, func() { e.SetOperatorHasFallthroughForKey(Dense, true) })
}

func allRuntimeKeys() []DispatchKey {
	var keys []DispatchKey
	for idx := 1; idx < NumRuntimeEntries; idx++ {
		keys = append(keys, RuntimeKeyForTableIndex(idx))
	}
	return keys
}

func TestFallthroughInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	keys := allRuntimeKeys()
	e := MakeDispatchKeyExtractorUninitialized()
	for step := 0; step < 2000; step++ {
		k := keys[rng.IntN(len(keys))]
		hasFallthrough := rng.IntN(2) == 0
		e.SetOperatorHasFallthroughForKey(k, hasFallthrough)

		// Lock-step: singleton functionalities agree everywhere, including the backend-agnostic entry.
		for f := Dense; f < EndOfFunctionalityKeys; f++ {
			if IsPerBackendFunctionalityKey(f) {
				continue
			}
			bit := KeySetOf(f)
			want := e.NonFallthroughKeys().HasAll(bit)
			for i := 0; i <= NumBackends; i++ {
				require.Equal(t, want, e.NonFallthroughKeysForBackend(i).HasAll(bit),
					"step %d: %s differs for backend entry %d", step, f, i)
			}
		}

		// RequiresBitsetPerBackend iff some pair of backends disagrees.
		differ := false
		for i := 0; i < NumBackends && !differ; i++ {
			for j := i + 1; j < NumBackends; j++ {
				if !e.NonFallthroughKeysForBackend(i).Equal(e.NonFallthroughKeysForBackend(j)) {
					differ = true
					break
				}
			}
		}
		require.Equal(t, differ, e.RequiresBitsetPerBackend(), "step %d", step)

		// The last toggle is reflected in the entry of its backend.
		entry := e.NonFallthroughKeys()
		if b := ToBackendComponent(k); b.IsValid() {
			entry = e.NonFallthroughKeysForBackend(b.Index())
		}
		require.Equal(t, !hasFallthrough, entry.HasAll(KeySetOf(ToFunctionalityKey(k))), "step %d: %s", step, k)
	}
}

func TestFallthroughIdempotence(t *testing.T) {
	for _, k := range []DispatchKey{CPU, SparseXLA, AutogradCUDA, Tracer, BackendSelect} {
		for _, hasFallthrough := range []bool{true, false} {
			e := MakeDispatchKeyExtractorUninitialized()
			e.SetOperatorHasFallthroughForKey(XLA, true)
			e.SetOperatorHasFallthroughForKey(k, hasFallthrough)
			once := e
			e.SetOperatorHasFallthroughForKey(k, hasFallthrough)
			assert.Equal(t, once, e, "SetOperatorHasFallthroughForKey(%s, %v) twice", k, hasFallthrough)
		}
	}
}

func TestExtractorSchemaLifecycle(t *testing.T) {
	schema := MustParseSchema("test::f(Tensor a, int n, Tensor b)")
	e := MakeDispatchKeyExtractor(schema)
	assert.Equal(t, "101", e.DispatchArgIndicesReverse().String())
	require.NotPanics(t, func() { e.CheckInvariants(schema) })
	require.Panics(t, func() { e.CheckInvariants(MustParseSchema("test::f(Tensor a, Tensor n, Tensor b)")) })

	e.DeregisterSchema()
	assert.True(t, e.GetDispatchKeySetBoxed(noLocalKeys, []any{Tag("a", CPU), 1, Tag("b", CPU)}).IsEmpty())
	require.Panics(t, func() { e.CheckInvariants(schema) })

	e.RegisterSchema(schema)
	e.SetOperatorHasFallthroughForKey(CUDA, true)
	state := e.DumpState()
	assert.Contains(t, state, "dispatch args (reversed): 101")
	assert.Contains(t, state, "requires bitset per backend: true")
	assert.Contains(t, state, "fallthrough: [Dense]")
	assert.Contains(t, state, "CPUBit: []")
	assert.Contains(t, state, "CUDABit: [Dense]")
}
