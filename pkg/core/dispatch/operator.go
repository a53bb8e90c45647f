// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
	"k8s.io/klog/v2"
)

// OperatorHandle is the runtime entry of one operator: its schema, the kernels registered for it and the
// computed operator table that routes each runtime DispatchKey to a kernel.
//
// Registration state is owned by the Dispatcher and only changed under its lock. Every change produces a new
// immutable operatorSnapshot (table + extractor), published atomically: calls load the snapshot once and
// never take a lock.
type OperatorHandle struct {
	name       OperatorName
	dispatcher *Dispatcher

	// Guarded by dispatcher.mu.
	schema    *FunctionSchema
	kernels   map[DispatchKey][]*registration // Newest first.
	extractor DispatchKeyExtractor

	snapshot atomic.Pointer[operatorSnapshot]
}

// operatorSnapshot is never modified after it is published.
type operatorSnapshot struct {
	table     [MaxRuntimeEntries]KernelFunction
	sources   [MaxRuntimeEntries]tableSource
	extractor DispatchKeyExtractor
	hasSchema bool
}

// tableSource tells where an operator table entry came from.
type tableSource int

const (
	sourceMissing tableSource = iota
	sourceKernel
	sourceCompositeExplicitAutograd
	sourceCompositeImplicitAutograd
	sourceAmbiguousAutogradOther
	sourceAutograd
	sourceBackendFallback
)

var tableSourceNames = [...]string{
	sourceMissing:                   "missing",
	sourceKernel:                    "kernel",
	sourceCompositeExplicitAutograd: "CompositeExplicitAutograd",
	sourceCompositeImplicitAutograd: "CompositeImplicitAutograd",
	sourceAmbiguousAutogradOther:    "ambiguous",
	sourceAutograd:                  "Autograd",
	sourceBackendFallback:           "backend fallback",
}

func (s tableSource) String() string { return tableSourceNames[s] }

func newOperatorHandle(d *Dispatcher, name OperatorName) *OperatorHandle {
	op := &OperatorHandle{
		name:       name,
		dispatcher: d,
		kernels:    make(map[DispatchKey][]*registration),
		extractor:  MakeDispatchKeyExtractorUninitialized(),
	}
	op.updateTableLocked()
	return op
}

// Name of the operator.
func (op *OperatorHandle) Name() OperatorName { return op.name }

// Schema returns the operator schema, or nil if the operator only has implementations registered so far.
func (op *OperatorHandle) Schema() *FunctionSchema {
	op.dispatcher.mu.Lock()
	defer op.dispatcher.mu.Unlock()
	return op.schema
}

// String implements fmt.Stringer.
func (op *OperatorHandle) String() string { return op.name.String() }

// KernelFor returns the table entry for the runtime key k. The zero KernelFunction (invalid) is returned for
// keys without a kernel and for keys without a table slot (alias keys, functionality keys without a backend).
func (op *OperatorHandle) KernelFor(k DispatchKey) KernelFunction {
	idx := k.DispatchTableIndex()
	if idx < 0 {
		return KernelFunction{}
	}
	return op.snapshot.Load().table[idx]
}

// LookupKernel returns the key selected by ks and its table entry.
// A key set without functionality bits selects Undefined.
func (op *OperatorHandle) LookupKernel(ks DispatchKeySet) (DispatchKey, KernelFunction) {
	return op.snapshot.Load().lookup(ks)
}

func (s *operatorSnapshot) lookup(ks DispatchKeySet) (DispatchKey, KernelFunction) {
	if ks.Functionalities().IsEmpty() {
		return Undefined, s.table[0]
	}
	k := ks.HighestPriorityKey()
	idx := k.DispatchTableIndex()
	if idx < 0 {
		return k, KernelFunction{}
	}
	return k, s.table[idx]
}

// HasKernelForDispatchKey returns whether a kernel was registered directly for k.
// For alias keys it returns whether a kernel was registered for the alias itself.
func (op *OperatorHandle) HasKernelForDispatchKey(k DispatchKey) bool {
	op.dispatcher.mu.Lock()
	defer op.dispatcher.mu.Unlock()
	return len(op.kernels[k]) > 0
}

// hasKernelForAnyDispatchKeyLocked returns whether a kernel was registered directly for any runtime key in ks.
func (op *OperatorHandle) hasKernelForAnyDispatchKeyLocked(ks DispatchKeySet) bool {
	for k, regs := range op.kernels {
		if len(regs) == 0 || k == Undefined || IsAliasDispatchKey(k) {
			continue
		}
		if ks.Has(k) {
			return true
		}
	}
	return false
}

// Extractor returns a copy of the current DispatchKeyExtractor of the operator.
func (op *OperatorHandle) Extractor() *DispatchKeyExtractor {
	e := op.snapshot.Load().extractor
	return &e
}

// Call the operator: the dispatch key set is computed from the arguments (as marked by the schema) and the
// local keys in ctx, and the selected kernel is called.
//
// It returns a *NoKernelError if the selected key has no kernel.
func (op *OperatorHandle) Call(ctx context.Context, args ...any) ([]any, error) {
	snap := op.snapshot.Load()
	if !snap.hasSchema {
		return nil, &NoSchemaError{Op: op.name}
	}
	ks := snap.extractor.GetDispatchKeySetBoxed(LocalKeySetFromContext(ctx), args)
	return op.callWithKeySet(ctx, snap, ks, args)
}

// Redispatch calls the operator with the given key set, typically a kernel's own key set restricted to the keys
// below it. Local keys are not applied again, but fallthrough functionalities are still skipped.
func (op *OperatorHandle) Redispatch(ctx context.Context, ks DispatchKeySet, args ...any) ([]any, error) {
	snap := op.snapshot.Load()
	return op.callWithKeySet(ctx, snap, snap.extractor.maskFallthroughs(ks), args)
}

func (op *OperatorHandle) callWithKeySet(ctx context.Context, snap *operatorSnapshot, ks DispatchKeySet, args []any) ([]any, error) {
	k, kernel := snap.lookup(ks)
	if op.dispatcher.config.Trace {
		klog.Infof("dispatch %s: %s -> %s (%s)", op.name, ks, k, kernel)
	}
	if kernel.fn == nil {
		return nil, &NoKernelError{Op: op.name, Key: k, KeySet: ks}
	}
	return kernel.Call(ctx, op, ks, args)
}

// computeTableEntryLocked returns the kernel for the runtime key k, following the precedence:
//
//  1. Kernel registered directly for k (newest first).
//  2. CompositeExplicitAutograd kernel, if k is a backend key.
//  3. CompositeImplicitAutograd kernel, if k is covered by it. For autograd keys, only if no backend kernel
//     (or CompositeExplicitAutograd kernel) exists for the backends the autograd key handles, and for
//     AutogradOther an error kernel if some AutogradOther backend has a kernel.
//  4. Autograd kernel, if k is an autograd key.
//  5. Backend fallback registered in the Dispatcher.
//  6. Missing.
func (op *OperatorHandle) computeTableEntryLocked(k DispatchKey) (KernelFunction, tableSource) {
	if regs := op.kernels[k]; len(regs) > 0 {
		return regs[0].kernel, sourceKernel
	}
	if regs := op.kernels[CompositeExplicitAutograd]; len(regs) > 0 && RuntimeDispatchKeySetHas(CompositeExplicitAutograd, k) {
		return regs[0].kernel, sourceCompositeExplicitAutograd
	}
	if regs := op.kernels[CompositeImplicitAutograd]; len(regs) > 0 && RuntimeDispatchKeySetHas(CompositeImplicitAutograd, k) {
		if k == AutogradOther && op.hasKernelForAnyDispatchKeyLocked(AutogradOtherBackends) {
			return ambiguousAutogradOtherKernel(), sourceAmbiguousAutogradOther
		}
		hasBackendKernel := len(op.kernels[CompositeExplicitAutograd]) > 0 ||
			op.hasKernelForAnyDispatchKeyLocked(BackendKeySetFromAutograd(k))
		if !hasBackendKernel {
			return regs[0].kernel, sourceCompositeImplicitAutograd
		}
	}
	if regs := op.kernels[Autograd]; len(regs) > 0 && RuntimeDispatchKeySetHas(Autograd, k) {
		return regs[0].kernel, sourceAutograd
	}
	if idx := k.DispatchTableIndex(); idx >= 0 {
		if regs := op.dispatcher.fallbacks[idx]; len(regs) > 0 {
			return regs[0].kernel, sourceBackendFallback
		}
	}
	return KernelFunction{}, sourceMissing
}

// updateTableLocked recomputes every table entry, updates the fallthrough state of the extractor and publishes
// a new snapshot.
func (op *OperatorHandle) updateTableLocked() {
	snap := &operatorSnapshot{hasSchema: op.schema != nil}
	for idx := 0; idx < NumRuntimeEntries; idx++ {
		k := RuntimeKeyForTableIndex(idx)
		snap.table[idx], snap.sources[idx] = op.computeTableEntryLocked(k)
		op.extractor.SetOperatorHasFallthroughForKey(k, snap.table[idx].IsFallthrough())
	}
	if op.schema != nil && op.dispatcher.config.CheckInvariants {
		op.extractor.CheckInvariants(op.schema)
	}
	snap.extractor = op.extractor
	op.snapshot.Store(snap)
	if klog.V(2).Enabled() {
		klog.Infof("operator %s: table updated, non-fallthrough keys %s (per backend: %v)",
			op.name, op.extractor.NonFallthroughKeys().Functionalities(), op.extractor.RequiresBitsetPerBackend())
	}
}

// DumpComputedTable returns one line per runtime key with a valid entry: the key, the kernel and where it
// came from.
func (op *OperatorHandle) DumpComputedTable() string {
	snap := op.snapshot.Load()
	var sb strings.Builder
	for idx := 0; idx < NumRuntimeEntries; idx++ {
		kernel := snap.table[idx]
		if !kernel.IsValid() {
			continue
		}
		_, _ = fmt.Fprintf(&sb, "%s: %s [%s]\n", RuntimeKeyForTableIndex(idx), kernel, snap.sources[idx])
	}
	return sb.String()
}

// TableEntry describes one computed entry of the operator table.
type TableEntry struct {
	Key    DispatchKey
	Kernel KernelFunction
	Source string
}

// ComputedTable returns the valid entries of the operator table, in table order.
func (op *OperatorHandle) ComputedTable() []TableEntry {
	snap := op.snapshot.Load()
	var entries []TableEntry
	for idx := 0; idx < NumRuntimeEntries; idx++ {
		if kernel := snap.table[idx]; kernel.IsValid() {
			entries = append(entries, TableEntry{
				Key:    RuntimeKeyForTableIndex(idx),
				Kernel: kernel,
				Source: snap.sources[idx].String(),
			})
		}
	}
	return entries
}

// DumpRegistrations returns the schema and the kernels registered directly with the operator (not the
// computed table), keys in priority order and newest registration first.
func (op *OperatorHandle) DumpRegistrations() string {
	op.dispatcher.mu.Lock()
	defer op.dispatcher.mu.Unlock()
	var sb strings.Builder
	if op.schema != nil {
		_, _ = fmt.Fprintf(&sb, "schema: %s\n", op.schema)
	} else {
		_, _ = fmt.Fprintf(&sb, "name: %s (no schema)\n", op.name)
	}
	keys := make([]DispatchKey, 0, len(op.kernels))
	for k, regs := range op.kernels {
		if len(regs) > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, reg := range op.kernels[k] {
			_, _ = fmt.Fprintf(&sb, "%s: %s [%s]\n", k, reg.kernel, reg.handle.ID)
		}
	}
	return sb.String()
}
