// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"context"

	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// KernelFunc implements an operator for some dispatch key.
//
// ks is the key set the call was dispatched with. Kernels that only handle one concern (e.g. autograd) do
// their work and call op.Redispatch with ks restricted to the keys below their own, e.g.
// ks.Intersect(AfterAutogradKeySet).
type KernelFunc func(ctx context.Context, op *OperatorHandle, ks DispatchKeySet, args []any) ([]any, error)

// KernelFunction is an entry of the operator table: either a kernel, a fallthrough, or invalid (the zero value).
type KernelFunction struct {
	fn            KernelFunc
	isFallthrough bool
	debug         string
}

// MakeKernel wraps fn. The debug string is used in dumps and error messages.
func MakeKernel(fn KernelFunc, debug string) KernelFunction {
	if fn == nil {
		exceptions.Panicf("MakeKernel(nil, %q): kernel function must be non-nil", debug)
	}
	return KernelFunction{fn: fn, debug: debug}
}

// MakeFallthrough returns the fallthrough kernel: dispatch skips its key and continues with the next one
// in priority order, without making any call.
func MakeFallthrough() KernelFunction {
	return KernelFunction{isFallthrough: true, debug: "fallthrough"}
}

// IsValid returns whether k is a kernel or a fallthrough.
func (k KernelFunction) IsValid() bool {
	return k.fn != nil || k.isFallthrough
}

// IsFallthrough returns whether k is the fallthrough kernel.
func (k KernelFunction) IsFallthrough() bool {
	return k.isFallthrough
}

// Debug returns the description given when the kernel was created.
func (k KernelFunction) Debug() string {
	return k.debug
}

// String implements fmt.Stringer.
func (k KernelFunction) String() string {
	switch {
	case k.isFallthrough:
		return "fallthrough"
	case k.fn == nil:
		return "<missing>"
	case k.debug == "":
		return "kernel"
	default:
		return k.debug
	}
}

// Call the kernel. It panics if k is not a callable kernel: fallthroughs are masked out before a kernel is
// selected, and missing kernels are reported by the OperatorHandle as a NoKernelError.
func (k KernelFunction) Call(ctx context.Context, op *OperatorHandle, ks DispatchKeySet, args []any) ([]any, error) {
	if k.fn == nil {
		exceptions.Panicf("KernelFunction.Call(%s) on operator %v with %s: not a callable kernel", k, op, ks)
	}
	return k.fn(ctx, op, ks, args)
}

// ambiguousAutogradOtherKernel is placed in the AutogradOther slot when a CompositeImplicitAutograd kernel
// and a kernel for one of the AutogradOtherBackends are both registered: there is no way to tell whether the
// composite kernel is the right autograd behavior for that backend.
func ambiguousAutogradOtherKernel() KernelFunction {
	return MakeKernel(func(_ context.Context, op *OperatorHandle, ks DispatchKeySet, _ []any) ([]any, error) {
		return nil, errors.Errorf("operator %s: ambiguous autograd for %s, it has a CompositeImplicitAutograd "+
			"kernel and a kernel for a backend in AutogradOther; register an explicit AutogradOther kernel",
			op.Name(), ks)
	}, "ambiguous AutogradOther")
}
