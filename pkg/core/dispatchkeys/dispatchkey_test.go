// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatchkeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perBackendFunctionalities() []DispatchKey {
	return []DispatchKey{Dense, Quantized, Sparse, AutogradFunctionality}
}

func TestRuntimeKeyRoundTrip(t *testing.T) {
	for _, band := range perBackendBands {
		for k := band.start + 1; k <= band.end; k++ {
			functionality := ToFunctionalityKey(k)
			backend := ToBackendComponent(k)
			require.Equal(t, band.functionality, functionality, "functionality of %s", k)
			require.True(t, backend.IsValid(), "backend of %s", k)
			assert.Equal(t, k, ToRuntimePerBackendFunctionalityKey(functionality, backend), "round trip of %s", k)
			assert.True(t, IsRuntimePerBackendKey(k))
			assert.True(t, IsRuntimeKey(k))
		}
		// The band start pairs the functionality with InvalidBit.
		assert.Equal(t, InvalidBit, ToBackendComponent(band.start))
		assert.Equal(t, band.functionality, ToFunctionalityKey(band.start))
		assert.Equal(t, band.start, ToRuntimePerBackendFunctionalityKey(band.functionality, InvalidBit))
		assert.False(t, IsRuntimeKey(band.start))
	}
}

func TestBandsFollowBackendOrder(t *testing.T) {
	for _, b := range Backends() {
		name := b.String()
		name = name[:len(name)-len("Bit")]
		dense, err := ParseDispatchKey(name)
		require.NoError(t, err)
		assert.Equal(t, b, ToBackendComponent(dense))
		for _, prefix := range []string{"Quantized", "Sparse", "Autograd"} {
			k, err := ParseDispatchKey(prefix + name)
			require.NoError(t, err)
			assert.Equal(t, b, ToBackendComponent(k), "backend of %s", k)
		}
	}
}

func TestBandDisjointness(t *testing.T) {
	seen := make(map[DispatchKey][2]int)
	for fIdx, f := range perBackendFunctionalities() {
		for _, b := range Backends() {
			k := ToRuntimePerBackendFunctionalityKey(f, b)
			if prev, found := seen[k]; found {
				t.Fatalf("(%s, %s) and %v map to the same key %s", f, b, prev, k)
			}
			seen[k] = [2]int{fIdx, int(b)}
		}
	}
	assert.Len(t, seen, len(perBackendFunctionalities())*NumBackends)
}

func TestNonPerBackendFunctionalities(t *testing.T) {
	for k := Dense; k < EndOfFunctionalityKeys; k++ {
		assert.Equal(t, k, ToFunctionalityKey(k))
		assert.Equal(t, InvalidBit, ToBackendComponent(k))
		if !IsPerBackendFunctionalityKey(k) {
			assert.Equal(t, Undefined, ToRuntimePerBackendFunctionalityKey(k, CPUBit), "%s is not per-backend", k)
		}
	}
	assert.Equal(t, 4, NumPerBackendFunctionalityKeys())
	assert.Equal(t, Undefined, ToFunctionalityKey(Autograd))
	assert.Equal(t, Undefined, ToFunctionalityKey(CompositeExplicitAutograd))
}

func TestIsAliasDispatchKey(t *testing.T) {
	testCases := []struct {
		key  DispatchKey
		want bool
	}{
		{Undefined, false},
		{Dense, false},
		{Tracer, false},
		{TestingOnlyGenericMode, false},
		{EndOfFunctionalityKeys, false},
		{CPU, false},
		{PrivateUse3, false},
		{QuantizedCPU, false},
		{SparseCUDA, false},
		{AutogradXLA, false},
		{AutogradPrivateUse3, false},
		{Autograd, true},
		{CompositeImplicitAutograd, true},
		{CompositeExplicitAutograd, true},
		{CompositeExplicitAutograd + 1, false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, IsAliasDispatchKey(tc.key), "IsAliasDispatchKey(%s)", tc.key)
	}
	for k := StartOfAliasKeys; k <= EndOfAliasKeys; k++ {
		assert.True(t, IsAliasDispatchKey(k))
	}
}

func TestDispatchTableIndex(t *testing.T) {
	assert.Equal(t, 82, NumRuntimeEntries)
	assert.Equal(t, 0, Undefined.DispatchTableIndex())
	assert.Equal(t, -1, Dense.DispatchTableIndex())
	assert.Equal(t, -1, StartOfSparseBackends.DispatchTableIndex())
	assert.Equal(t, -1, Autograd.DispatchTableIndex())
	assert.Equal(t, -1, EndOfFunctionalityKeys.DispatchTableIndex())

	// Every runtime key has its own slot and the mapping is invertible.
	used := make(map[int]DispatchKey)
	for k := Undefined; k <= EndOfAliasKeys; k++ {
		idx := k.DispatchTableIndex()
		if !IsRuntimeKey(k) {
			if k != Undefined {
				assert.Equal(t, -1, idx, "%s should have no slot", k)
			}
			continue
		}
		require.True(t, idx > 0 && idx < NumRuntimeEntries, "slot of %s is %d", k, idx)
		if prev, found := used[idx]; found {
			t.Fatalf("%s and %s share slot %d", prev, k, idx)
		}
		used[idx] = k
		assert.Equal(t, k, RuntimeKeyForTableIndex(idx))
	}
	assert.Len(t, used, NumRuntimeEntries-1)
	assert.Equal(t, Undefined, RuntimeKeyForTableIndex(NumRuntimeEntries))
	assert.Equal(t, Undefined, RuntimeKeyForTableIndex(-1))
}

func TestParseDispatchKey(t *testing.T) {
	k, err := ParseDispatchKey("AutogradCUDA")
	require.NoError(t, err)
	assert.Equal(t, AutogradCUDA, k)

	k, err = ParseDispatchKey(" sparsecpu ")
	require.NoError(t, err)
	assert.Equal(t, SparseCPU, k)

	k, err = ParseDispatchKey("DefaultBackend")
	require.NoError(t, err)
	assert.Equal(t, CompositeExplicitAutograd, k)

	_, err = ParseDispatchKey("NotAKey")
	require.Error(t, err)

	keys, err := ParseDispatchKeys("CPU, AutogradCPU,,Tracer")
	require.NoError(t, err)
	assert.Equal(t, []DispatchKey{CPU, AutogradCPU, Tracer}, keys)

	_, err = ParseDispatchKeys("CPU,Bogus")
	require.Error(t, err)
}

func TestGetAutogradKeyFromBackend(t *testing.T) {
	assert.Equal(t, AutogradCPU, GetAutogradKeyFromBackend(CPUBit))
	assert.Equal(t, AutogradPrivateUse2, GetAutogradKeyFromBackend(PrivateUse2Bit))
	assert.Equal(t, AutogradOther, GetAutogradKeyFromBackend(InvalidBit))
}

func TestBackendComponent(t *testing.T) {
	assert.Equal(t, 12, NumBackends)
	assert.Equal(t, uint64(0xFFF), FullBackendMask)
	assert.Equal(t, 0, CPUBit.Index())
	assert.Equal(t, -1, InvalidBit.Index())
	assert.Equal(t, XLABit, BackendFromIndex(XLABit.Index()))
	assert.Equal(t, InvalidBit, BackendFromIndex(NumBackends))
	assert.Len(t, Backends(), NumBackends)
	assert.Equal(t, "CUDABit", CUDABit.String())
}
