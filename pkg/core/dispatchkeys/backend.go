// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatchkeys

// BackendComponent identifies a "backend" for dispatch: the device family whose kernel is selected once
// a per-backend functionality (Dense, Quantized, Sparse, AutogradFunctionality) wins the priority contest.
//
// Each BackendComponent (except InvalidBit) owns one of the low bits of a DispatchKeySet: CPUBit is bit 0,
// CUDABit is bit 1 and so on. Functionality bits live above them.
//
// The order of the values matters: the four per-backend bands of DispatchKey list their backends in
// exactly this same order, and toBackendComponent relies on it (see DispatchKey).
type BackendComponent uint8

//go:generate go tool enumer -type=BackendComponent -output=gen_backendcomponent_enumer.go backend.go

const (
	InvalidBit BackendComponent = iota
	CPUBit
	CUDABit
	HIPBit
	XLABit
	MLCBit
	XPUBit
	HPUBit
	VEBit
	LazyBit
	PrivateUse1Bit
	PrivateUse2Bit
	PrivateUse3Bit

	EndOfBackendKeys = PrivateUse3Bit
)

// NumBackends is the number of valid backends (InvalidBit excluded).
const NumBackends = int(EndOfBackendKeys)

// FullBackendMask has one bit set per valid backend.
const FullBackendMask = uint64(1)<<NumBackends - 1

// No more than 16 backends: the backend bits must fit the low 16 bits of the key set.
// The constant conversion fails to compile if this is ever violated.
const _ = uint8(16 - NumBackends)

// Index returns the zero-based index of the backend (CPUBit is 0), or -1 for InvalidBit.
func (b BackendComponent) Index() int {
	return int(b) - 1
}

// IsValid returns whether b is one of the real backends.
func (b BackendComponent) IsValid() bool {
	return b > InvalidBit && b <= EndOfBackendKeys
}

// BackendFromIndex is the inverse of BackendComponent.Index.
// It returns InvalidBit for out-of-range indices.
func BackendFromIndex(idx int) BackendComponent {
	if idx < 0 || idx >= NumBackends {
		return InvalidBit
	}
	return BackendComponent(idx + 1)
}

// Backends returns all the valid backends in priority order (lowest first).
func Backends() []BackendComponent {
	backends := make([]BackendComponent, 0, NumBackends)
	for b := CPUBit; b <= EndOfBackendKeys; b++ {
		backends = append(backends, b)
	}
	return backends
}
