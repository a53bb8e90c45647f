// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"strings"

	"github.com/pkg/errors"
)

// DISPATCHKEYS_CONFIG is the environment variable with the default Dispatcher configuration used by New.
//
// The format is a comma-separated list of options, see ParseConfig.
const DISPATCHKEYS_CONFIG = "DISPATCHKEYS_CONFIG"

// DefaultConfig is used by New if DISPATCHKEYS_CONFIG is not set.
var DefaultConfig string

// Config of a Dispatcher.
type Config struct {
	// CheckInvariants verifies the extractor of every operator after each registration change.
	CheckInvariants bool

	// Trace logs every dispatch decision with klog.Infof.
	Trace bool

	// NoDefaultFallthroughs disables the fallthrough fallbacks registered by default, see DefaultFallthroughKeys.
	NoDefaultFallthroughs bool
}

// ParseConfig parses a comma-separated list of options:
//
//   - "check_invariants": see Config.CheckInvariants.
//   - "trace": see Config.Trace.
//   - "no_default_fallthroughs": see Config.NoDefaultFallthroughs.
//
// Options can be prefixed with "no-" or "-" to disable them. Empty options are ignored.
func ParseConfig(config string) (Config, error) {
	var c Config
	for _, option := range strings.Split(config, ",") {
		option = strings.TrimSpace(option)
		if option == "" {
			continue
		}
		value := true
		for _, prefix := range []string{"no-", "-"} {
			if strings.HasPrefix(option, prefix) {
				option = option[len(prefix):]
				value = false
				break
			}
		}
		switch option {
		case "check_invariants":
			c.CheckInvariants = value
		case "trace":
			c.Trace = value
		case "no_default_fallthroughs":
			c.NoDefaultFallthroughs = value
		default:
			return Config{}, errors.Errorf("unknown dispatcher configuration option %q in %q", option, config)
		}
	}
	return c, nil
}

// String returns the configuration in the format accepted by ParseConfig.
func (c Config) String() string {
	var options []string
	if c.CheckInvariants {
		options = append(options, "check_invariants")
	}
	if c.Trace {
		options = append(options, "trace")
	}
	if c.NoDefaultFallthroughs {
		options = append(options, "no_default_fallthroughs")
	}
	return strings.Join(options, ",")
}
