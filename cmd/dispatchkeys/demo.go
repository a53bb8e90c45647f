// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/dispatchkeys/pkg/core/dispatch"
	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
)

const (
	demoOpName   = "demo::add.Tensor"
	demoOpSchema = demoOpName + "(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor"
)

type pathCtxKey struct{}

// withPath returns a context where the demo kernels record their names.
func withPath(ctx context.Context, path *[]string) context.Context {
	return context.WithValue(ctx, pathCtxKey{}, path)
}

func recordPath(ctx context.Context, name string) {
	if path, ok := ctx.Value(pathCtxKey{}).(*[]string); ok {
		*path = append(*path, name)
	}
}

// demoArgs unpacks the arguments of demo::add.
func demoArgs(args []any) (self, other float64, alpha float64, err error) {
	if len(args) < 2 {
		return 0, 0, 0, errors.Errorf("%s: expected at least 2 arguments, got %d", demoOpName, len(args))
	}
	alpha = 1
	if len(args) > 2 {
		var ok bool
		if alpha, ok = args[2].(float64); !ok {
			return 0, 0, 0, errors.Errorf("%s: alpha must be a float64, got %T", demoOpName, args[2])
		}
	}
	values := make([]float64, 2)
	for i := range values {
		tagged, ok := args[i].(dispatch.Tagged)
		if !ok {
			return 0, 0, 0, errors.Errorf("%s: argument #%d must be a dispatch.Tagged, got %T", demoOpName, i, args[i])
		}
		if values[i], ok = tagged.Value.(float64); !ok {
			return 0, 0, 0, errors.Errorf("%s: argument #%d must hold a float64, got %T", demoOpName, i, tagged.Value)
		}
	}
	return values[0], values[1], alpha, nil
}

// backendKernel computes self + alpha*other, with the result tagged with the given backend.
func backendKernel(key DispatchKey) dispatch.KernelFunction {
	name := "add_" + strings.ToLower(key.String())
	return dispatch.MakeKernel(func(ctx context.Context, _ *dispatch.OperatorHandle, _ DispatchKeySet, args []any) ([]any, error) {
		recordPath(ctx, name)
		self, other, alpha, err := demoArgs(args)
		if err != nil {
			return nil, err
		}
		return []any{dispatch.Tagged{Keys: KeySetOf(key), Value: self + alpha*other}}, nil
	}, name)
}

// autogradKernel redispatches below autograd, and tags the result with the autograd keys of its backend.
func autogradKernel() dispatch.KernelFunction {
	return dispatch.MakeKernel(func(ctx context.Context, op *dispatch.OperatorHandle, ks DispatchKeySet, args []any) ([]any, error) {
		recordPath(ctx, "add_autograd")
		outputs, err := op.Redispatch(ctx, ks.Intersect(AfterAutogradKeySet), args...)
		if err != nil {
			return nil, err
		}
		for i, output := range outputs {
			if tagged, ok := output.(dispatch.Tagged); ok {
				tagged.Keys = tagged.Keys.Union(AutogradRelatedKeySetFromBackend(ks.HighestBackend()))
				outputs[i] = tagged
			}
		}
		return outputs, nil
	}, "add_autograd")
}

// tracerKernel records the call and redispatches below Tracer.
func tracerKernel() dispatch.KernelFunction {
	return dispatch.MakeKernel(func(ctx context.Context, op *dispatch.OperatorHandle, ks DispatchKeySet, args []any) ([]any, error) {
		recordPath(ctx, "add_tracer")
		return op.Redispatch(ctx, ks.Remove(Tracer), args...)
	}, "add_tracer")
}

// newDemoDispatcher registers demo::add with CPU and CUDA kernels, an Autograd kernel, a Tracer fallback and
// a fallthrough for XLA (so XLA calls have no kernel to go to).
func newDemoDispatcher(config string) (*dispatch.Dispatcher, *dispatch.OperatorHandle) {
	var d *dispatch.Dispatcher
	if config == "" {
		d = dispatch.New()
	} else {
		d = dispatch.NewWithConfig(config)
	}
	op := must.M1(d.RegisterDef(demoOpSchema)).Op()
	_ = must.M1(d.RegisterImpl(demoOpName, CPU, backendKernel(CPU)))
	_ = must.M1(d.RegisterImpl(demoOpName, CUDA, backendKernel(CUDA)))
	_ = must.M1(d.RegisterImpl(demoOpName, XLA, dispatch.MakeFallthrough()))
	_ = must.M1(d.RegisterImpl(demoOpName, Autograd, autogradKernel()))
	_ = must.M1(d.RegisterFallback(Tracer, tracerKernel()))
	return d, op
}

// demoCall is one sample call of demo::add.
type demoCall struct {
	Name  string
	Local []DispatchKey // Included in the context.
	Args  []any
}

var demoCalls = []demoCall{
	{Name: "cpu", Args: []any{dispatch.Tag(1.0, CPU), dispatch.Tag(2.0, CPU)}},
	{Name: "cpu with autograd", Args: []any{dispatch.Tag(1.0, CPU, AutogradCPU), dispatch.Tag(2.0, CPU), 0.5}},
	{Name: "cuda traced", Local: []DispatchKey{Tracer}, Args: []any{dispatch.Tag(1.0, CUDA), dispatch.Tag(3.0, CUDA)}},
	{Name: "mixed cpu/cuda", Args: []any{dispatch.Tag(1.0, CPU), dispatch.Tag(4.0, CUDA, AutogradCUDA)}},
	{Name: "xla (fallthrough)", Args: []any{dispatch.Tag(1.0, XLA), dispatch.Tag(5.0, XLA)}},
}

// demoResult is the outcome of a demoCall.
type demoResult struct {
	KeySet DispatchKeySet
	Path   []string
	Output []any
	Err    error
}

// runDemoCall calls op with the given sample call, recording the kernels visited.
func runDemoCall(op *dispatch.OperatorHandle, call demoCall) demoResult {
	var result demoResult
	ctx := withPath(context.Background(), &result.Path)
	if len(call.Local) > 0 {
		ctx = dispatch.WithIncludedKeys(ctx, call.Local...)
	}
	local := dispatch.LocalKeySetFromContext(ctx)
	result.KeySet = op.Extractor().GetDispatchKeySetBoxed(local, call.Args)
	result.Output, result.Err = op.Call(ctx, call.Args...)
	return result
}

// reportDemo prints the demo operator registrations, extractor state, computed table and the result of the
// sample calls.
func reportDemo(config string) {
	_, op := newDemoDispatcher(config)

	fmt.Println(titleStyle.Render("Registrations"))
	fmt.Println(op.DumpRegistrations())
	fmt.Println(titleStyle.Render("Extractor State"))
	fmt.Println(op.Extractor().DumpState())

	fmt.Println(titleStyle.Render("Computed Operator Table"))
	table := newTable([]string{"Key", "Slot", "Kernel", "Source"}, lipgloss.Left, lipgloss.Right, lipgloss.Left)
	for _, entry := range op.ComputedTable() {
		table.Row(false, entry.Key.String(), fmt.Sprint(entry.Key.DispatchTableIndex()),
			entry.Kernel.String(), entry.Source)
	}
	fmt.Println(table.Render())

	fmt.Println(titleStyle.Render("Sample Calls"))
	table = newTable([]string{"Call", "Dispatch Key Set", "Path", "Result"})
	for _, call := range demoCalls {
		result := runDemoCall(op, call)
		var outcome string
		if result.Err != nil {
			outcome = result.Err.Error()
		} else {
			outcome = fmt.Sprint(result.Output...)
		}
		table.Row(result.Err != nil, call.Name, result.KeySet.String(), strings.Join(result.Path, " → "), outcome)
	}
	fmt.Println(table.Render())
}
