// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"fmt"

	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
)

// NoKernelError is returned when a call selects a dispatch key for which the operator has no kernel and
// there is no backend fallback.
type NoKernelError struct {
	Op     OperatorName
	Key    DispatchKey
	KeySet DispatchKeySet
}

// Error implements error.
func (e *NoKernelError) Error() string {
	if e.Key == Undefined {
		return fmt.Sprintf("operator %s: no dispatch key to select a kernel (computed %s), "+
			"maybe the call has no tensor arguments?", e.Op, e.KeySet)
	}
	return fmt.Sprintf("operator %s: no kernel registered for dispatch key %s (computed %s)",
		e.Op, e.Key, e.KeySet)
}

// NoSchemaError is returned when an operator that only has implementations registered (no schema) is called.
type NoSchemaError struct {
	Op OperatorName
}

// Error implements error.
func (e *NoSchemaError) Error() string {
	return fmt.Sprintf("operator %s has kernels but no schema: register it with Dispatcher.RegisterDef", e.Op)
}
