// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"fmt"

	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
)

// Keyed is implemented by tensor-like values: anything that carries the dispatch keys it should be routed on.
// Dispatch only ever reads the keys, it never changes the value.
type Keyed interface {
	DispatchKeySet() DispatchKeySet
}

// Tagged is a minimal Keyed value: an arbitrary payload tagged with a DispatchKeySet.
// Used by tests, the demo CLI and by kernels that create new outputs.
type Tagged struct {
	Keys  DispatchKeySet
	Value any
}

// Tag creates a Tagged value holding the given keys.
func Tag(value any, keys ...DispatchKey) Tagged {
	return Tagged{Keys: KeySetOf(keys...), Value: value}
}

// DispatchKeySet implements Keyed.
func (t Tagged) DispatchKeySet() DispatchKeySet { return t.Keys }

// String implements fmt.Stringer.
func (t Tagged) String() string {
	return fmt.Sprintf("%v%s", t.Value, t.Keys)
}

var _ Keyed = Tagged{}

// keySetOfArg returns the keys carried by one argument:
//
//   - Keyed values contribute their key set.
//   - []Keyed (tensor lists) contribute the union of their elements.
//   - []any (optional tensor lists) contribute the union of their Keyed elements, nil entries are skipped.
//   - nil and anything else contribute nothing.
func keySetOfArg(arg any) DispatchKeySet {
	switch v := arg.(type) {
	case nil:
		return EmptyKeySet
	case Keyed:
		return v.DispatchKeySet()
	case []Keyed:
		ks := EmptyKeySet
		for _, elem := range v {
			if elem != nil {
				ks = ks.Union(elem.DispatchKeySet())
			}
		}
		return ks
	case []any:
		ks := EmptyKeySet
		for _, elem := range v {
			if keyed, ok := elem.(Keyed); ok {
				ks = ks.Union(keyed.DispatchKeySet())
			}
		}
		return ks
	default:
		return EmptyKeySet
	}
}
