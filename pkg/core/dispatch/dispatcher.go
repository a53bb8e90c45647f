// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dispatch routes operator calls to kernels using the dispatch-key model of package dispatchkeys.
//
// A Dispatcher holds operators (registered with a schema by RegisterDef), kernels registered for each
// operator under a DispatchKey (RegisterImpl), and backend fallbacks shared by all operators (RegisterFallback).
// For each operator it keeps a computed table with one kernel per runtime key, and a DispatchKeyExtractor that
// computes the key set of each call from its arguments.
//
// A call goes like this:
//
//  1. The union of the key sets of the tensor-like arguments is computed (see Keyed).
//  2. The context's LocalDispatchKeySet is applied: included keys are added, excluded keys removed.
//  3. Functionalities whose kernel is a fallthrough are masked out.
//  4. The highest priority key of what is left selects the kernel.
//
// Kernels that handle one concern (autograd, tracing, ...) call OperatorHandle.Redispatch with their key set
// restricted to the keys below their own, until a backend kernel does the actual computation.
//
// Registration can happen concurrently with calls: registration is serialized, and each change publishes a
// new immutable snapshot of the operator's table and extractor.
package dispatch

import (
	"cmp"
	"context"
	"os"
	"slices"
	"sync"

	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
	"github.com/gomlx/exceptions"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultFallthroughKeys get a fallthrough backend fallback in every new Dispatcher, unless the configuration
// sets no_default_fallthroughs. These are functionalities that most operators don't care about.
var DefaultFallthroughKeys = []DispatchKey{
	BackendSelect, ADInplaceOrView, Autograd, AutocastCPU, AutocastCUDA, Conjugate, Negative, ZeroTensor,
}

// Dispatcher holds the operators, their kernels and the backend fallbacks.
// It is safe for concurrent use.
type Dispatcher struct {
	config Config

	mu        sync.Mutex
	operators map[OperatorName]*OperatorHandle
	fallbacks [MaxRuntimeEntries][]*registration // Newest first.
}

// RegistrationKind is the type of a registration.
type RegistrationKind int

const (
	DefRegistration RegistrationKind = iota
	ImplRegistration
	FallbackRegistration
)

// String implements fmt.Stringer.
func (k RegistrationKind) String() string {
	switch k {
	case DefRegistration:
		return "def"
	case ImplRegistration:
		return "impl"
	case FallbackRegistration:
		return "fallback"
	default:
		return "unknown"
	}
}

// RegistrationHandle is returned by every registration and undoes it when released.
type RegistrationHandle struct {
	ID   uuid.UUID
	Kind RegistrationKind
	Key  DispatchKey

	dispatcher *Dispatcher
	op         *OperatorHandle
	reg        *registration
	slots      []int // Fallback table slots.
	released   bool  // Guarded by dispatcher.mu.
}

type registration struct {
	handle *RegistrationHandle
	kernel KernelFunction
}

// Op returns the operator of the registration, or nil for fallbacks.
func (h *RegistrationHandle) Op() *OperatorHandle { return h.op }

// String implements fmt.Stringer.
func (h *RegistrationHandle) String() string {
	if h.op != nil {
		return h.Kind.String() + " " + h.op.name.String() + "/" + h.Key.String() + " " + h.ID.String()
	}
	return h.Kind.String() + " " + h.Key.String() + " " + h.ID.String()
}

// New returns a new Dispatcher with the default configuration.
//
// The default is:
//
// 1. The environment DISPATCHKEYS_CONFIG is used as a configuration if defined.
// 2. Next the variable DefaultConfig is used.
//
// It panics if the configuration is invalid.
func New() *Dispatcher {
	if config, found := os.LookupEnv(DISPATCHKEYS_CONFIG); found {
		return NewWithConfig(config)
	}
	return NewWithConfig(DefaultConfig)
}

// NewWithConfig returns a new Dispatcher configured with config, see ParseConfig for the format.
// It panics if the configuration is invalid.
func NewWithConfig(config string) *Dispatcher {
	c, err := ParseConfig(config)
	if err != nil {
		exceptions.Panicf("dispatch.NewWithConfig(%q): %+v", config, err)
	}
	d := &Dispatcher{
		config:    c,
		operators: make(map[OperatorName]*OperatorHandle),
	}
	if !c.NoDefaultFallthroughs {
		for _, k := range DefaultFallthroughKeys {
			if _, err := d.RegisterFallback(k, MakeFallthrough()); err != nil {
				exceptions.Panicf("failed to register default fallthrough for %s: %+v", k, err)
			}
		}
	}
	return d
}

// Config returns the configuration of the Dispatcher.
func (d *Dispatcher) Config() Config { return d.config }

// RegisterDef registers an operator with the given schema, see ParseSchema for the format.
// It returns an error if the schema is invalid or if the operator already has a schema.
func (d *Dispatcher) RegisterDef(schema string) (*RegistrationHandle, error) {
	s, err := ParseSchema(schema)
	if err != nil {
		return nil, errors.WithMessage(err, "Dispatcher.RegisterDef()")
	}
	if s.NumArguments() > MaxArguments {
		return nil, errors.Errorf("Dispatcher.RegisterDef(%q): %d arguments, at most %d are supported",
			schema, s.NumArguments(), MaxArguments)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	op := d.findOrCreateOpLocked(s.OperatorName)
	if op.schema != nil {
		return nil, errors.Errorf("Dispatcher.RegisterDef(%q): operator %s already registered with schema %s",
			schema, op.name, op.schema)
	}
	op.schema = s
	op.extractor.RegisterSchema(s)
	op.updateTableLocked()
	h := d.newHandle(DefRegistration, Undefined, op)
	klog.V(1).Infof("registered operator %s [%s]", s, h.ID)
	return h, nil
}

// RegisterImpl registers kernel for the operator opName under key, which must be a runtime key, an alias key
// or Undefined (a catch-all kernel, used when the call has no dispatch key).
//
// The operator doesn't need to have been defined yet. Newer registrations for the same key take precedence
// over older ones until they are released.
func (d *Dispatcher) RegisterImpl(opName string, key DispatchKey, kernel KernelFunction) (*RegistrationHandle, error) {
	if key != Undefined && !IsRuntimeKey(key) && !IsAliasDispatchKey(key) {
		return nil, errors.Errorf("Dispatcher.RegisterImpl(%q, %s): key must be a runtime or alias dispatch key",
			opName, key)
	}
	if !kernel.IsValid() {
		return nil, errors.Errorf("Dispatcher.RegisterImpl(%q, %s): invalid kernel", opName, key)
	}
	name := ParseOperatorName(opName)
	if name.Name == "" {
		return nil, errors.Errorf("Dispatcher.RegisterImpl(%q, %s): empty operator name", opName, key)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	op := d.findOrCreateOpLocked(name)
	h := d.newHandle(ImplRegistration, key, op)
	h.reg = &registration{handle: h, kernel: kernel}
	op.kernels[key] = slices.Insert(op.kernels[key], 0, h.reg)
	op.updateTableLocked()
	klog.V(1).Infof("registered %s kernel %s for operator %s [%s]", key, kernel, op.name, h.ID)
	return h, nil
}

// RegisterFallback registers a backend fallback: the kernel used for key by every operator that has no
// kernel of its own for it.
//
// Alias keys and per-backend functionality keys (e.g. Dense) register the fallback for every runtime key
// they cover.
func (d *Dispatcher) RegisterFallback(key DispatchKey, kernel KernelFunction) (*RegistrationHandle, error) {
	if !kernel.IsValid() {
		return nil, errors.Errorf("Dispatcher.RegisterFallback(%s): invalid kernel", key)
	}
	slots, err := fallbackSlots(key)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.newHandle(FallbackRegistration, key, nil)
	h.reg = &registration{handle: h, kernel: kernel}
	h.slots = slots
	for _, idx := range slots {
		if len(d.fallbacks[idx]) > 0 {
			klog.Warningf("backend fallback for %s: %s overrides %s",
				RuntimeKeyForTableIndex(idx), kernel, d.fallbacks[idx][0].kernel)
		}
		d.fallbacks[idx] = slices.Insert(d.fallbacks[idx], 0, h.reg)
	}
	d.updateAllTablesLocked()
	klog.V(1).Infof("registered backend fallback %s for %s [%s]", kernel, key, h.ID)
	return h, nil
}

// fallbackSlots returns the table slots covered by a fallback registered for key.
func fallbackSlots(key DispatchKey) ([]int, error) {
	var keys DispatchKeySet
	switch {
	case IsAliasDispatchKey(key):
		keys = ExpandAlias(key)
	case IsPerBackendFunctionalityKey(key):
		keys = KeySetOf(key).Union(AllBackends)
	case IsRuntimeKey(key):
		keys = KeySetOf(key)
	default:
		return nil, errors.Errorf("Dispatcher.RegisterFallback(%s): key has no runtime expansion", key)
	}
	var slots []int
	for k := range keys.Keys() {
		slots = append(slots, k.DispatchTableIndex())
	}
	return slots, nil
}

func (d *Dispatcher) newHandle(kind RegistrationKind, key DispatchKey, op *OperatorHandle) *RegistrationHandle {
	return &RegistrationHandle{ID: uuid.New(), Kind: kind, Key: key, dispatcher: d, op: op}
}

func (d *Dispatcher) findOrCreateOpLocked(name OperatorName) *OperatorHandle {
	op, found := d.operators[name]
	if !found {
		op = newOperatorHandle(d, name)
		d.operators[name] = op
	}
	return op
}

func (d *Dispatcher) updateAllTablesLocked() {
	for _, op := range d.operators {
		op.updateTableLocked()
	}
}

// removeIfUnusedLocked drops the operator once it has neither a schema nor kernels.
func (d *Dispatcher) removeIfUnusedLocked(op *OperatorHandle) {
	if op.schema != nil {
		return
	}
	for _, regs := range op.kernels {
		if len(regs) > 0 {
			return
		}
	}
	if d.operators[op.name] == op {
		delete(d.operators, op.name)
	}
}

// Release undoes the registration. Releasing more than once is a no-op.
func (h *RegistrationHandle) Release() {
	d := h.dispatcher
	d.mu.Lock()
	defer d.mu.Unlock()
	if h.released {
		return
	}
	h.released = true
	switch h.Kind {
	case DefRegistration:
		op := h.op
		op.schema = nil
		op.extractor.DeregisterSchema()
		op.updateTableLocked()
		d.removeIfUnusedLocked(op)
	case ImplRegistration:
		op := h.op
		op.kernels[h.Key] = removeRegistration(op.kernels[h.Key], h.reg)
		if len(op.kernels[h.Key]) == 0 {
			delete(op.kernels, h.Key)
		}
		op.updateTableLocked()
		d.removeIfUnusedLocked(op)
	case FallbackRegistration:
		for _, idx := range h.slots {
			d.fallbacks[idx] = removeRegistration(d.fallbacks[idx], h.reg)
		}
		d.updateAllTablesLocked()
	}
	klog.V(1).Infof("released %s", h)
}

func removeRegistration(regs []*registration, reg *registration) []*registration {
	return slices.DeleteFunc(regs, func(r *registration) bool { return r == reg })
}

// FindOp returns the operator with the given name ("ns::name.overload"), or nil if no operator with that name
// was defined with RegisterDef.
func (d *Dispatcher) FindOp(name string) *OperatorHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	op, found := d.operators[ParseOperatorName(name)]
	if !found || op.schema == nil {
		return nil
	}
	return op
}

// Operators returns the names of the defined operators, sorted.
func (d *Dispatcher) Operators() []OperatorName {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]OperatorName, 0, len(d.operators))
	for name, op := range d.operators {
		if op.schema != nil {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b OperatorName) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.OverloadName, b.OverloadName))
	})
	return names
}

// Call finds the operator by name and calls it, see OperatorHandle.Call.
func (d *Dispatcher) Call(ctx context.Context, name string, args ...any) ([]any, error) {
	op := d.FindOp(name)
	if op == nil {
		return nil, errors.Errorf("Dispatcher.Call(%q): unknown operator", name)
	}
	return op.Call(ctx, args...)
}
