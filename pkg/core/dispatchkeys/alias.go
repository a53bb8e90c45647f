// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatchkeys

// Named key sets used by the registration layer and by kernels that redispatch.
var (
	// AllBackends has every backend bit and no functionality.
	AllBackends = DispatchKeySet{backendMask}

	// AutogradDispatchKeySet is the runtime expansion of the Autograd alias: AutogradFunctionality for every
	// backend plus AutogradOther and AutogradNestedTensor.
	AutogradDispatchKeySet = KeySetOf(AutogradFunctionality, AutogradOther, AutogradNestedTensor).Union(AllBackends)

	// AutocastDispatchKeySet holds the autocast functionalities.
	AutocastDispatchKeySet = KeySetOf(AutocastCPU, AutocastCUDA)

	// AutogradOtherBackends are the backends whose autograd is handled by AutogradOther: everything that is
	// not Dense and has no autograd key of its own.
	AutogradOtherBackends = KeySetOf(FPGA, ORT, Vulkan, Metal, SparseCsrCPU, SparseCsrCUDA,
		CustomRNGKeyId, MkldnnCPU, Meta, Sparse, Quantized).Union(AllBackends)

	// BackendDispatchKeySet is the runtime expansion of the CompositeExplicitAutograd alias: every
	// "backend" functionality (compute kernels), for every backend.
	BackendDispatchKeySet = AutogradOtherBackends.Union(KeySetOf(Dense))

	// MathDispatchKeySet is the runtime expansion of the CompositeImplicitAutograd alias.
	MathDispatchKeySet = BackendDispatchKeySet.Union(AutogradDispatchKeySet)

	// AfterAutogradKeySet holds every functionality below autograd: what an autograd kernel redispatches to.
	AfterAutogradKeySet = FullAfter(AutogradOther)

	// AfterADInplaceOrViewKeySet holds every functionality below ADInplaceOrView.
	AfterADInplaceOrViewKeySet = FullAfter(ADInplaceOrView)

	// DefaultIncludedSet is included in every call unless the context says otherwise.
	DefaultIncludedSet = KeySetOf(BackendSelect, ADInplaceOrView)

	// DefaultExcludedSet is excluded from every call unless the context says otherwise:
	// autocast is opt-in.
	DefaultExcludedSet = AutocastDispatchKeySet
)

// AutogradRelatedKeySetFromBackend returns the autograd keys a tensor on backend b carries:
// its per-backend autograd key plus ADInplaceOrView.
func AutogradRelatedKeySetFromBackend(b BackendComponent) DispatchKeySet {
	return KeySetOf(ADInplaceOrView, GetAutogradKeyFromBackend(b))
}

// AutocastRelatedKeySetFromBackend returns the autocast functionality for backend b, or the empty set if
// the backend doesn't support autocast.
func AutocastRelatedKeySetFromBackend(b BackendComponent) DispatchKeySet {
	switch b {
	case CPUBit:
		return KeySetOf(AutocastCPU)
	case CUDABit, XLABit:
		return KeySetOf(AutocastCUDA)
	default:
		return EmptyKeySet
	}
}

// BackendKeySetFromAutograd returns the backend keys handled by the autograd key k:
// for AutogradCUDA it is {CUDA, QuantizedCUDA, SparseCUDA}, for AutogradOther it is AutogradOtherBackends.
func BackendKeySetFromAutograd(k DispatchKey) DispatchKeySet {
	switch {
	case k == AutogradOther:
		return AutogradOtherBackends
	case k == AutogradNestedTensor:
		return KeySetOf(NestedTensor).Union(AllBackends)
	case ToFunctionalityKey(k) == AutogradFunctionality:
		b := toBackendComponent(k)
		if b == InvalidBit {
			return EmptyKeySet
		}
		return KeySetOf(Dense, Quantized, Sparse).AddBackend(b)
	default:
		return EmptyKeySet
	}
}

// ExpandAlias returns the runtime keys covered by k. For alias keys it is their fixed expansion; for any other
// key it is the set of k itself.
//
// This is the only place that defines what an alias means: the registration layer resolves aliases through
// it before anything is stored in the operator table.
func ExpandAlias(k DispatchKey) DispatchKeySet {
	switch k {
	case Autograd:
		return AutogradDispatchKeySet
	case CompositeImplicitAutograd:
		return MathDispatchKeySet
	case CompositeExplicitAutograd:
		return BackendDispatchKeySet
	default:
		return KeySetOf(k)
	}
}

// RuntimeDispatchKeySetHas returns whether the runtime key k is covered by alias (or equal to it, for
// non-alias keys).
func RuntimeDispatchKeySetHas(alias, k DispatchKey) bool {
	if keyBits(k) == 0 {
		return false
	}
	return ExpandAlias(alias).Has(k)
}

// IsIncludedInAlias returns whether the runtime key k is covered by the alias key.
func IsIncludedInAlias(k, alias DispatchKey) bool {
	return k != Undefined && RuntimeDispatchKeySetHas(alias, k)
}
