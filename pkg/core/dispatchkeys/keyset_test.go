// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatchkeys

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySetAddRemove(t *testing.T) {
	ks := KeySetOf(CPU)
	assert.True(t, ks.Has(CPU))
	assert.True(t, ks.Has(Dense))
	assert.True(t, ks.HasBackend(CPUBit))
	assert.False(t, ks.Has(CUDA))
	assert.False(t, ks.Has(SparseCPU))

	// Adding a second per-backend functionality on the same backend.
	ks = ks.Add(AutogradCPU)
	assert.True(t, ks.Has(AutogradCPU))
	assert.True(t, ks.Has(CPU))

	// Removing AutogradCPU keeps the CPU backend bit, so CPU is still there.
	ks2 := ks.Remove(AutogradCPU)
	assert.False(t, ks2.Has(AutogradCPU))
	assert.True(t, ks2.Has(CPU))
	assert.True(t, ks.Has(AutogradCPU), "Remove must not change the original set")

	// Removing the backend removes every per-backend key of that backend.
	ks3 := ks.RemoveBackend(CPUBit)
	assert.False(t, ks3.Has(CPU))
	assert.False(t, ks3.Has(AutogradCPU))
	assert.True(t, ks3.Has(Dense))

	// Singleton functionalities only need their own bit.
	ks4 := EmptyKeySet.Add(Tracer)
	assert.True(t, ks4.Has(Tracer))
	assert.True(t, ks4.Remove(Tracer).IsEmpty())

	require.Panics(t, func() { ks.Has(Undefined) })
	require.Panics(t, func() { ks.Has(Autograd) })
}

func TestKeySetAlgebra(t *testing.T) {
	a := KeySetOf(CPU, Tracer)
	b := KeySetOf(CUDA, Python)
	u := a.Union(b)
	for _, k := range []DispatchKey{CPU, CUDA, Tracer, Python} {
		assert.True(t, u.Has(k), "%s in union", k)
	}
	assert.True(t, u.IsSupersetOf(a))
	assert.False(t, a.IsSupersetOf(u))
	assert.Equal(t, KeySetOf(Tracer), a.Intersect(KeySetOf(Tracer, Python)))
	assert.Equal(t, KeySetOf(CPU), a.Sub(KeySetOf(Tracer)))
	assert.True(t, a.HasAny(KeySetOf(Tracer)))
	assert.False(t, a.HasAny(KeySetOf(Python)))
	assert.False(t, a.HasAny(KeySetOf(CUDA)), "Dense is shared but the backend isn't")
	assert.True(t, a.Equal(KeySetOf(Tracer, CPU)))
	assert.Equal(t, a, KeySetFromRaw(a.Raw()))
	assert.Equal(t, KeySetOfBackends(CPUBit), a.Backends())
	assert.Equal(t, KeySetOf(Dense, Tracer), a.Functionalities())
}

func TestHighestPriorityKey(t *testing.T) {
	require.Panics(t, func() { EmptyKeySet.HighestPriorityKey() })

	assert.Equal(t, CPU, KeySetOf(CPU).HighestPriorityKey())
	assert.Equal(t, CUDA, KeySetOf(CPU, CUDA).HighestPriorityKey())
	assert.Equal(t, AutogradCUDA, KeySetOf(CPU, AutogradCUDA).HighestPriorityKey())
	assert.Equal(t, Tracer, KeySetOf(CPU, AutogradCPU, Tracer).HighestPriorityKey())

	// Only backend bits: no functionality to dispatch to.
	assert.Equal(t, Undefined, KeySetOfBackends(CUDABit).HighestPriorityKey())
	// Per-backend functionality with no backend.
	assert.Equal(t, StartOfDenseBackends, KeySetOf(Dense).HighestPriorityKey())
	assert.Equal(t, -1, KeySetOf(Dense).DispatchTableIndex())
}

func TestPriorityMonotonicity(t *testing.T) {
	// Every pair of runtime keys: the one with the higher functionality (or, for equal per-backend
	// functionality, the higher backend) wins.
	var runtimeKeys []DispatchKey
	for k := Dense; k <= EndOfRuntimeBackendKeys; k++ {
		if IsRuntimeKey(k) {
			runtimeKeys = append(runtimeKeys, k)
		}
	}
	rank := func(k DispatchKey) (int, int) {
		return int(ToFunctionalityKey(k)), int(ToBackendComponent(k))
	}
	for _, a := range runtimeKeys {
		for _, b := range runtimeKeys {
			if a == b {
				continue
			}
			fa, ba := rank(a)
			fb, bb := rank(b)
			if fa < fb || (fa == fb && ba < bb) {
				continue
			}
			ks := KeySetOf(a, b)
			want := a
			if fa != fb && IsPerBackendFunctionalityKey(ToFunctionalityKey(a)) {
				// The winning functionality picks the highest backend present, which may come from b.
				want = ToRuntimePerBackendFunctionalityKey(ToFunctionalityKey(a), ks.HighestBackend())
			}
			require.Equal(t, want, ks.HighestPriorityKey(), "KeySetOf(%s, %s)", a, b)
		}
	}
}

func TestRedispatchWalk(t *testing.T) {
	ks := KeySetOf(CPU, AutogradCPU)
	assert.Equal(t, AutogradCPU, ks.HighestPriorityKey())
	ks = ks.Intersect(AfterAutogradKeySet)
	assert.Equal(t, CPU, ks.HighestPriorityKey())
	ks = ks.Remove(CPU)
	assert.Equal(t, Undefined, ks.HighestPriorityKey())
}

func TestFullAfter(t *testing.T) {
	after := FullAfter(AutogradCPU)
	assert.True(t, after.Has(ADInplaceOrView))
	assert.True(t, after.Has(CUDA))
	assert.True(t, after.Has(AutogradOther))
	assert.False(t, after.Has(AutogradFunctionality))
	assert.False(t, after.Has(Tracer))
	assert.True(t, FullKeySet().IsSupersetOf(after))
	assert.Equal(t, AllBackends, FullAfter(Undefined))
}

func TestKeysIteration(t *testing.T) {
	ks := KeySetOf(CUDA, CPU, Tracer, AutogradCPU)
	got := slices.Collect(ks.Keys())
	// Dense and AutogradFunctionality expand over both backends, as the bits are shared.
	assert.Equal(t, []DispatchKey{CPU, CUDA, AutogradCPU, AutogradCUDA, Tracer}, got)
	assert.Equal(t, []BackendComponent{CPUBit, CUDABit}, slices.Collect(ks.BackendComponents()))
	assert.Empty(t, slices.Collect(KeySetOf(Dense).Keys()))
}

func TestKeySetString(t *testing.T) {
	assert.Equal(t, "DispatchKeySet(CPU, Tracer)", KeySetOf(Tracer, CPU).String())
	assert.Equal(t, "DispatchKeySet(backends=[CUDABit])", KeySetOfBackends(CUDABit).String())
	assert.Equal(t, "DispatchKeySet()", EmptyKeySet.String())
}

func TestAliasExpansion(t *testing.T) {
	for _, b := range Backends() {
		autogradKey := GetAutogradKeyFromBackend(b)
		denseKey := ToRuntimePerBackendFunctionalityKey(Dense, b)
		assert.True(t, IsIncludedInAlias(autogradKey, Autograd))
		assert.False(t, IsIncludedInAlias(denseKey, Autograd))
		assert.True(t, IsIncludedInAlias(denseKey, CompositeExplicitAutograd))
		assert.False(t, IsIncludedInAlias(autogradKey, CompositeExplicitAutograd))
		assert.True(t, IsIncludedInAlias(denseKey, CompositeImplicitAutograd))
		assert.True(t, IsIncludedInAlias(autogradKey, CompositeImplicitAutograd))
	}
	assert.True(t, IsIncludedInAlias(AutogradOther, Autograd))
	assert.False(t, IsIncludedInAlias(Tracer, CompositeImplicitAutograd))
	assert.False(t, IsIncludedInAlias(Undefined, Autograd))
	assert.True(t, RuntimeDispatchKeySetHas(Tracer, Tracer))
	assert.False(t, RuntimeDispatchKeySetHas(Autograd, Autograd))

	assert.Equal(t, KeySetOf(CUDA, QuantizedCUDA, SparseCUDA), BackendKeySetFromAutograd(AutogradCUDA))
	assert.Equal(t, AutogradOtherBackends, BackendKeySetFromAutograd(AutogradOther))
	assert.True(t, BackendKeySetFromAutograd(CPU).IsEmpty())
	assert.Equal(t, KeySetOf(ADInplaceOrView, AutogradXLA), AutogradRelatedKeySetFromBackend(XLABit))
	assert.Equal(t, KeySetOf(AutocastCPU), AutocastRelatedKeySetFromBackend(CPUBit))
	assert.True(t, AutocastRelatedKeySetFromBackend(VEBit).IsEmpty())
}
