// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	. "github.com/gomlx/dispatchkeys/pkg/core/dispatchkeys"
	"github.com/pkg/errors"
)

// keyKind describes what kind of DispatchKey k is.
func keyKind(k DispatchKey) string {
	switch {
	case k == Undefined:
		return "undefined"
	case IsAliasDispatchKey(k):
		return "alias"
	case IsPerBackendFunctionalityKey(k):
		return "per-backend functionality"
	case IsFunctionalityKey(k):
		return "functionality"
	case IsRuntimePerBackendKey(k):
		return "runtime per-backend"
	default:
		return "marker"
	}
}

// reportKeys prints one row per DispatchKey: its value, kind, decomposition and operator table slot.
func reportKeys() {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Dispatch Keys (%d backends, %d table slots)",
		NumBackends, NumRuntimeEntries)))
	table := newTable([]string{"Value", "Key", "Kind", "Functionality", "Backend", "Slot"},
		lipgloss.Right, lipgloss.Left, lipgloss.Left, lipgloss.Left, lipgloss.Left, lipgloss.Right)
	for _, k := range DispatchKeyValues() {
		functionality, backend := "", ""
		if f := ToFunctionalityKey(k); f != Undefined && f != k {
			functionality = f.String()
		}
		if b := ToBackendComponent(k); b.IsValid() {
			backend = b.String()
		}
		slot := ""
		if idx := k.DispatchTableIndex(); idx >= 0 {
			slot = strconv.Itoa(idx)
		}
		table.Row(false, strconv.Itoa(int(k)), k.String(), keyKind(k), functionality, backend, slot)
	}
	fmt.Println(table.Render())
}

// reportAliases prints the runtime keys covered by each alias key.
func reportAliases() {
	fmt.Println(titleStyle.Render("Alias Keys"))
	table := newTable([]string{"Alias", "# Keys", "Functionalities", "Runtime Keys"},
		lipgloss.Left, lipgloss.Right, lipgloss.Left)
	for alias := StartOfAliasKeys; alias <= EndOfAliasKeys; alias++ {
		expanded := ExpandAlias(alias)
		var functionalities []string
		for f := Dense; f < EndOfFunctionalityKeys; f++ {
			if expanded.HasAll(KeySetOf(f)) {
				functionalities = append(functionalities, f.String())
			}
		}
		var runtimeKeys []string
		for k := range expanded.Keys() {
			runtimeKeys = append(runtimeKeys, k.String())
		}
		table.Row(false, alias.String(), strconv.Itoa(len(runtimeKeys)),
			wrapWords(functionalities, 6), wrapWords(runtimeKeys, 6))
	}
	fmt.Println(table.Render())
}

// wrapWords joins words with spaces, n words per line.
func wrapWords(words []string, n int) string {
	var lines []string
	for chunk := range slices.Chunk(words, n) {
		lines = append(lines, strings.Join(chunk, " "))
	}
	return strings.Join(lines, "\n")
}

// walkStep is one round of a priority walk over a key set.
type walkStep struct {
	KeySet DispatchKeySet
	Key    DispatchKey
}

// priorityWalk returns the keys a call with ks would visit if every kernel redispatched below its own
// functionality: each round takes the highest priority key and removes its functionality.
func priorityWalk(ks DispatchKeySet) []walkStep {
	var steps []walkStep
	for !ks.Functionalities().IsEmpty() {
		k := ks.HighestPriorityKey()
		steps = append(steps, walkStep{KeySet: ks, Key: k})
		ks = ks.Remove(k)
	}
	return steps
}

// parseKeySet parses a comma-separated list of dispatch keys into a DispatchKeySet.
// Alias keys are expanded.
func parseKeySet(names string) (DispatchKeySet, error) {
	keys, err := ParseDispatchKeys(names)
	if err != nil {
		return EmptyKeySet, err
	}
	if len(keys) == 0 {
		return EmptyKeySet, errors.Errorf("no dispatch keys given in %q", names)
	}
	ks := EmptyKeySet
	for _, k := range keys {
		if k == Undefined {
			return EmptyKeySet, errors.Errorf("key set %q: Undefined can't be part of a key set", names)
		}
		ks = ks.Union(ExpandAlias(k))
	}
	return ks, nil
}

// reportKeySet prints the priority walk of the given key set.
func reportKeySet(ks DispatchKeySet) {
	fmt.Println(titleStyle.Render("Priority Walk"))
	table := newTable([]string{"Round", "Key Set", "Selected", "Slot"},
		lipgloss.Right, lipgloss.Left, lipgloss.Left, lipgloss.Right)
	for round, step := range priorityWalk(ks) {
		idx := step.Key.DispatchTableIndex()
		table.Row(idx < 0, strconv.Itoa(round+1), step.KeySet.String(), step.Key.String(), strconv.Itoa(idx))
	}
	fmt.Println(table.Render())
}
