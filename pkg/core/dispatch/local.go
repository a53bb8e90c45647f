// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"context"
	"fmt"

	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
)

// LocalDispatchKeySet holds the keys forced into (Included) or out of (Excluded) every dispatch made with a
// context. It is how kernels and users enable modes (e.g. tracing) or disable functionalities (e.g. autograd
// inside a "no grad" block) without touching the arguments.
//
// Excluded only holds functionality bits: excluding AutogradCPU excludes autograd for every backend.
type LocalDispatchKeySet struct {
	Included, Excluded DispatchKeySet
}

// DefaultLocalDispatchKeySet is used when the context doesn't carry one.
var DefaultLocalDispatchKeySet = LocalDispatchKeySet{
	Included: DefaultIncludedSet,
	Excluded: DefaultExcludedSet,
}

// String implements fmt.Stringer.
func (l LocalDispatchKeySet) String() string {
	return fmt.Sprintf("included=%s excluded=%s", l.Included, l.Excluded)
}

type localKeySetCtxKey struct{}

// LocalKeySetFromContext returns the LocalDispatchKeySet attached to ctx, or DefaultLocalDispatchKeySet.
func LocalKeySetFromContext(ctx context.Context) LocalDispatchKeySet {
	if ctx != nil {
		if local, ok := ctx.Value(localKeySetCtxKey{}).(LocalDispatchKeySet); ok {
			return local
		}
	}
	return DefaultLocalDispatchKeySet
}

// WithLocalKeySet returns a context carrying exactly local.
func WithLocalKeySet(ctx context.Context, local LocalDispatchKeySet) context.Context {
	local.Excluded = local.Excluded.Functionalities()
	return context.WithValue(ctx, localKeySetCtxKey{}, local)
}

// WithIncludedKeys returns a context where keys are added to the included set (and removed from the
// excluded set).
func WithIncludedKeys(ctx context.Context, keys ...DispatchKey) context.Context {
	local := LocalKeySetFromContext(ctx)
	included := KeySetOf(keys...)
	local.Included = local.Included.Union(included)
	local.Excluded = local.Excluded.Sub(included.Functionalities())
	return WithLocalKeySet(ctx, local)
}

// WithExcludedKeys returns a context where the functionalities of keys are excluded from dispatch (and removed
// from the included set).
func WithExcludedKeys(ctx context.Context, keys ...DispatchKey) context.Context {
	local := LocalKeySetFromContext(ctx)
	excluded := KeySetOf(keys...).Functionalities()
	local.Excluded = local.Excluded.Union(excluded)
	local.Included = local.Included.Sub(excluded)
	return WithLocalKeySet(ctx, local)
}
