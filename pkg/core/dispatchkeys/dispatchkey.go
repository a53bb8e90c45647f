// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dispatchkeys defines the dispatch-key model used to route every operator call to a kernel.
//
// A DispatchKey is one of:
//
//   - A functionality key (value < EndOfFunctionalityKeys): an orthogonal concern dispatch can route on,
//     like Dense, Sparse, AutogradFunctionality, Tracer or Python. Each one owns a bit in a DispatchKeySet.
//   - A runtime per-backend key (CPU, SparseCUDA, AutogradXLA, ...): the combination of one of the four
//     per-backend functionalities (Dense, Quantized, Sparse, AutogradFunctionality) with a BackendComponent.
//     They don't own a bit: in a DispatchKeySet they are represented by the functionality bit plus the
//     backend bit.
//   - An alias key (Autograd, CompositeImplicitAutograd, CompositeExplicitAutograd): only used when
//     registering kernels, it is expanded (see ExpandAlias) to the runtime keys it covers.
//
// The bit position in DispatchKeySet is the priority: the highest functionality bit set wins, and if it is a
// per-backend functionality, the highest backend bit selects which per-backend kernel to use.
//
// The numeric layout is load-bearing. In particular, the four per-backend bands list their backends in
// exactly the same order as BackendComponent, so that a single subtraction converts between them. Adding,
// removing or reordering a backend must be done in BackendComponent and in all four bands at once.
package dispatchkeys

import (
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// DispatchKey enumerates functionality keys, runtime per-backend keys and alias keys.
// See package documentation for details.
type DispatchKey uint16

//go:generate go tool enumer -type=DispatchKey -output=gen_dispatchkey_enumer.go dispatchkey.go

const (
	// Undefined is the "no key" value. It's also what HighestPriorityKey returns for a key set that only
	// holds backend bits.
	Undefined DispatchKey = iota

	// Functionality keys, ordered by priority (lowest first).

	Dense
	FPGA
	ORT
	Vulkan
	Metal
	Meta
	Quantized
	CustomRNGKeyId
	MkldnnCPU
	Sparse
	SparseCsrCPU
	SparseCsrCUDA
	NestedTensor
	BackendSelect
	Python
	Named
	Conjugate
	Negative
	ZeroTensor
	FuncTorchDynamicLayerBackMode
	ADInplaceOrView
	AutogradOther
	AutogradFunctionality
	AutogradNestedTensor
	Tracer
	AutocastCPU
	AutocastCUDA
	FuncTorchBatched
	FuncTorchVmapMode
	Batched
	VmapMode
	FuncTorchGradWrapper
	Functionalize
	FuncTorchDynamicLayerFrontMode
	PythonTLSSnapshot
	TestingOnlyGenericWrapper
	TestingOnlyGenericMode
	EndOfFunctionalityKeys

	// Dense per-backend band. Order must match BackendComponent.

	StartOfDenseBackends
	CPU
	CUDA
	HIP
	XLA
	MLC
	XPU
	HPU
	VE
	Lazy
	PrivateUse1
	PrivateUse2
	PrivateUse3

	// Quantized per-backend band. Order must match BackendComponent.

	StartOfQuantizedBackends
	QuantizedCPU
	QuantizedCUDA
	QuantizedHIP
	QuantizedXLA
	QuantizedMLC
	QuantizedXPU
	QuantizedHPU
	QuantizedVE
	QuantizedLazy
	QuantizedPrivateUse1
	QuantizedPrivateUse2
	QuantizedPrivateUse3

	// Sparse per-backend band. Order must match BackendComponent.

	StartOfSparseBackends
	SparseCPU
	SparseCUDA
	SparseHIP
	SparseXLA
	SparseMLC
	SparseXPU
	SparseHPU
	SparseVE
	SparseLazy
	SparsePrivateUse1
	SparsePrivateUse2
	SparsePrivateUse3

	// Autograd per-backend band. Order must match BackendComponent.

	StartOfAutogradBackends
	AutogradCPU
	AutogradCUDA
	AutogradHIP
	AutogradXLA
	AutogradMLC
	AutogradXPU
	AutogradHPU
	AutogradVE
	AutogradLazy
	AutogradPrivateUse1
	AutogradPrivateUse2
	AutogradPrivateUse3

	// Alias keys: registration only, never part of a runtime DispatchKeySet.

	Autograd
	CompositeImplicitAutograd
	CompositeExplicitAutograd
)

// Band boundaries and aliases.
const (
	EndOfDenseBackends      = PrivateUse3
	EndOfQuantizedBackends  = QuantizedPrivateUse3
	EndOfSparseBackends     = SparsePrivateUse3
	EndOfAutogradBackends   = AutogradPrivateUse3
	EndOfRuntimeBackendKeys = EndOfAutogradBackends

	StartOfAliasKeys = Autograd
	EndOfAliasKeys   = CompositeExplicitAutograd
)

// NumFunctionalityKeys counts the functionality keys, Undefined included (but not EndOfFunctionalityKeys).
const NumFunctionalityKeys = int(EndOfFunctionalityKeys)

// Backend and functionality bits must share one 64-bit word. Fails to compile otherwise.
// Undefined doesn't take a bit, hence the -1.
const _ = uint8(64 - (NumBackends + NumFunctionalityKeys - 1))

// Each band holds the Invalid slot (its StartOf key) plus one key per backend.
const (
	_ = uint8(int(EndOfDenseBackends-StartOfDenseBackends) - NumBackends)
	_ = uint8(NumBackends - int(EndOfDenseBackends-StartOfDenseBackends))
	_ = uint8(int(EndOfQuantizedBackends-StartOfQuantizedBackends) - NumBackends)
	_ = uint8(NumBackends - int(EndOfQuantizedBackends-StartOfQuantizedBackends))
	_ = uint8(int(EndOfSparseBackends-StartOfSparseBackends) - NumBackends)
	_ = uint8(NumBackends - int(EndOfSparseBackends-StartOfSparseBackends))
	_ = uint8(int(EndOfAutogradBackends-StartOfAutogradBackends) - NumBackends)
	_ = uint8(NumBackends - int(EndOfAutogradBackends-StartOfAutogradBackends))
)

// perBackendBand describes one of the per-backend bands of DispatchKey.
type perBackendBand struct {
	functionality DispatchKey
	start, end    DispatchKey
}

// perBackendBands lists the bands in DispatchKey order.
var perBackendBands = [...]perBackendBand{
	{Dense, StartOfDenseBackends, EndOfDenseBackends},
	{Quantized, StartOfQuantizedBackends, EndOfQuantizedBackends},
	{Sparse, StartOfSparseBackends, EndOfSparseBackends},
	{AutogradFunctionality, StartOfAutogradBackends, EndOfAutogradBackends},
}

// IsAliasDispatchKey returns whether k is an alias key, that is, in [StartOfAliasKeys, EndOfAliasKeys].
func IsAliasDispatchKey(k DispatchKey) bool {
	return k >= StartOfAliasKeys && k <= EndOfAliasKeys
}

// IsPerBackendFunctionalityKey returns whether k is a functionality that can be customized per backend:
// it only takes one bit in a DispatchKeySet, but it maps to NumBackends slots in the operator table.
func IsPerBackendFunctionalityKey(k DispatchKey) bool {
	switch k {
	case Dense, Quantized, Sparse, AutogradFunctionality:
		return true
	default:
		return false
	}
}

// IsFunctionalityKey returns whether k is a plain functionality key (Undefined excluded).
func IsFunctionalityKey(k DispatchKey) bool {
	return k > Undefined && k < EndOfFunctionalityKeys
}

// IsRuntimePerBackendKey returns whether k is a concrete (functionality, backend) key like CPU or AutogradCUDA.
// The band start keys (StartOfDenseBackends, ...) pair a functionality with InvalidBit and are not runtime keys.
func IsRuntimePerBackendKey(k DispatchKey) bool {
	return k > EndOfFunctionalityKeys && k <= EndOfRuntimeBackendKeys && toBackendComponent(k) != InvalidBit
}

// IsRuntimeKey returns whether k can be the target of a dispatch: it has a slot in the operator table.
func IsRuntimeKey(k DispatchKey) bool {
	return (IsFunctionalityKey(k) && !IsPerBackendFunctionalityKey(k)) || IsRuntimePerBackendKey(k)
}

// NumPerBackendFunctionalityKeys returns how many functionality keys are per-backend.
func NumPerBackendFunctionalityKeys() int {
	return numPerBackendFunctionalityKeys
}

var numPerBackendFunctionalityKeys = func() int {
	count := 0
	for k := Undefined; k < EndOfFunctionalityKeys; k++ {
		if IsPerBackendFunctionalityKey(k) {
			count++
		}
	}
	return count
}()

// NumRuntimeEntries is the size of the flat per-operator kernel table: singleton functionalities take one
// slot each (Undefined included) and per-backend functionalities take NumBackends slots each.
var NumRuntimeEntries = NumFunctionalityKeys + NumPerBackendFunctionalityKeys()*(NumBackends-1)

// MaxRuntimeEntries is a compile-time upper bound for NumRuntimeEntries, usable as an array size.
// Checked at init.
const MaxRuntimeEntries = NumFunctionalityKeys + len(perBackendBands)*(NumBackends-1)

// ToBackendComponent returns the backend of a runtime per-backend key (CPUBit for SparseCPU), or InvalidBit
// for any other key.
func ToBackendComponent(k DispatchKey) BackendComponent {
	return toBackendComponent(k)
}

// toBackendComponent relies on the bands being ordered as BackendComponent: a single subtraction of the
// band start suffices.
func toBackendComponent(k DispatchKey) BackendComponent {
	for _, band := range perBackendBands {
		if k >= band.start && k <= band.end {
			return BackendComponent(k - band.start)
		}
	}
	return InvalidBit
}

// ToFunctionalityKey returns the functionality of k: k itself for functionality keys, the band functionality
// for runtime per-backend keys (Sparse for SparseCUDA) and Undefined for anything else (alias keys).
func ToFunctionalityKey(k DispatchKey) DispatchKey {
	if k <= EndOfFunctionalityKeys {
		return k
	}
	for _, band := range perBackendBands {
		if k >= band.start && k <= band.end {
			return band.functionality
		}
	}
	return Undefined
}

// ToRuntimePerBackendFunctionalityKey composes a per-backend functionality with a backend:
// (Dense, CUDABit) -> CUDA. It returns Undefined if functionality is not per-backend.
//
// With InvalidBit it returns the band start key (e.g. StartOfDenseBackends), which has no kernel slot.
func ToRuntimePerBackendFunctionalityKey(functionality DispatchKey, backend BackendComponent) DispatchKey {
	for _, band := range perBackendBands {
		if band.functionality == functionality {
			return band.start + DispatchKey(backend)
		}
	}
	return Undefined
}

// GetAutogradKeyFromBackend returns the autograd runtime key for the backend: AutogradCPU for CPUBit.
// InvalidBit maps to AutogradOther.
func GetAutogradKeyFromBackend(b BackendComponent) DispatchKey {
	if !b.IsValid() {
		return AutogradOther
	}
	return ToRuntimePerBackendFunctionalityKey(AutogradFunctionality, b)
}

// functionalityOffsets holds, for each functionality key, the first slot it takes in the operator table.
var functionalityOffsets = func() (offsets [NumFunctionalityKeys]int) {
	next := 0
	for k := Undefined; k < EndOfFunctionalityKeys; k++ {
		offsets[k] = next
		if IsPerBackendFunctionalityKey(k) {
			next += NumBackends
		} else {
			next++
		}
	}
	return
}()

// tableIndexToKey is the inverse of DispatchTableIndex.
var tableIndexToKey = func() (keys [MaxRuntimeEntries]DispatchKey) {
	for k := Undefined; k <= EndOfRuntimeBackendKeys; k++ {
		if idx := k.DispatchTableIndex(); idx >= 0 {
			keys[idx] = k
		}
	}
	return
}()

func init() {
	if NumRuntimeEntries > MaxRuntimeEntries {
		exceptions.Panicf("NumRuntimeEntries=%d larger than MaxRuntimeEntries=%d: IsPerBackendFunctionalityKey and perBackendBands diverged",
			NumRuntimeEntries, MaxRuntimeEntries)
	}
}

// DispatchTableIndex returns the slot of the runtime key k in the flat per-operator kernel table.
// Undefined maps to slot 0. It returns -1 for keys without a slot: alias keys, band start keys, per-backend
// functionality keys without a backend (Dense) and out-of-range values.
func (k DispatchKey) DispatchTableIndex() int {
	if k < EndOfFunctionalityKeys {
		if IsPerBackendFunctionalityKey(k) {
			return -1
		}
		return functionalityOffsets[k]
	}
	backend := toBackendComponent(k)
	if backend == InvalidBit {
		return -1
	}
	return functionalityOffsets[ToFunctionalityKey(k)] + backend.Index()
}

// RuntimeKeyForTableIndex is the inverse of DispatchKey.DispatchTableIndex.
// It returns Undefined for slot 0 and for out-of-range indices.
func RuntimeKeyForTableIndex(idx int) DispatchKey {
	if idx < 0 || idx >= NumRuntimeEntries {
		return Undefined
	}
	return tableIndexToKey[idx]
}

// shortAliases are accepted by ParseDispatchKey on top of the enum names.
var shortAliases = map[string]DispatchKey{
	"CatchAll":                Undefined,
	"DefaultBackend":          CompositeExplicitAutograd,
	"Math":                    CompositeImplicitAutograd,
	"Autocast":                AutocastCUDA,
	"CPUTensorId":             CPU,
	"CUDATensorId":            CUDA,
	"PrivateUse1_PreAutograd": AutogradPrivateUse1,
	"PrivateUse2_PreAutograd": AutogradPrivateUse2,
	"PrivateUse3_PreAutograd": AutogradPrivateUse3,
}

// ParseDispatchKey converts a name ("CPU", "AutogradCUDA", "CompositeImplicitAutograd", ...) to a DispatchKey.
// Names are case-insensitive; a few legacy short aliases are also accepted.
func ParseDispatchKey(name string) (DispatchKey, error) {
	name = strings.TrimSpace(name)
	if k, found := shortAliases[name]; found {
		return k, nil
	}
	k, err := DispatchKeyString(name)
	if err != nil {
		return Undefined, errors.Errorf("unknown dispatch key %q", name)
	}
	return k, nil
}

// ParseDispatchKeys parses a comma-separated list of dispatch key names.
func ParseDispatchKeys(names string) ([]DispatchKey, error) {
	var keys []DispatchKey
	for _, name := range strings.Split(names, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, err := ParseDispatchKey(name)
		if err != nil {
			return nil, errors.WithMessagef(err, "parsing %q", names)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
