// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// dispatchkeys inspects the dispatch key model: the keys and their operator table slots, what alias keys
// expand to, the order in which a key set would be dispatched, and a demo operator routed through the
// dispatcher.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/dispatchkeys/pkg/core/dispatch"
	"github.com/muesli/termenv"
	"k8s.io/klog/v2"
)

var (
	flagKeys    = flag.Bool("keys", false, "Lists all dispatch keys, their kind, decomposition and operator table slot.")
	flagAliases = flag.Bool("aliases", false, "Lists the alias keys and the runtime keys they expand to.")
	flagKeySet  = flag.String("keyset", "", "Comma-separated list of dispatch keys (e.g. \"CPU,AutogradCPU,Tracer\"). "+
		"Prints the keys a call would visit, in priority order, if every kernel redispatched below itself.")
	flagDemo = flag.Bool("demo", false, "Registers the demo operator \"demo::add.Tensor\" and prints its registrations, "+
		"extractor state, computed table and the result of a few sample calls.")
	flagBench    = flag.Int("bench", 0, "If > 0, benchmark this many calls of the demo operator.")
	flagParallel = flag.Int("parallel", runtime.NumCPU(), "Number of goroutines used by -bench.")
	flagProgress = flag.Bool("progress", false, "Display a progress bar during -bench.")
	flagNoColor  = flag.Bool("no_color", false, "Disable colors in the output.")
	flagConfig   = flag.String("config", "", fmt.Sprintf(
		"Dispatcher configuration for -demo and -bench, e.g. \"trace,check_invariants\". "+
			"If empty, $%s is used.", dispatch.DISPATCHKEYS_CONFIG))
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagNoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %q. See 'dispatchkeys -help'.", flag.Args())
		os.Exit(1)
	}
	if !*flagKeys && !*flagAliases && *flagKeySet == "" && !*flagDemo && *flagBench <= 0 {
		flag.Usage()
		klog.Errorf("No report selected. See 'dispatchkeys -help'.")
		os.Exit(1)
	}
	if *flagConfig != "" {
		if _, err := dispatch.ParseConfig(*flagConfig); err != nil {
			klog.Errorf("Invalid -config: %+v", err)
			os.Exit(1)
		}
	}

	if *flagKeys {
		reportKeys()
	}
	if *flagAliases {
		reportAliases()
	}
	if *flagKeySet != "" {
		ks, err := parseKeySet(*flagKeySet)
		if err != nil {
			klog.Errorf("Invalid -keyset: %+v", err)
			os.Exit(1)
		}
		reportKeySet(ks)
	}
	if *flagDemo {
		reportDemo(*flagConfig)
	}
	if *flagBench > 0 {
		if err := reportBench(*flagConfig, *flagBench, *flagParallel, *flagProgress); err != nil {
			klog.Errorf("Benchmark failed: %+v", err)
			os.Exit(1)
		}
	}
}
