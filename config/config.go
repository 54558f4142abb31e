/*
MIT License

Copyright (c) 2026 priosem authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package config resolves the knobs that, in the C source this module was
// distilled from, were compile-time macros (PREALLOCHOLDERS, N_NEST,
// DEBUG_ASSERTIONS, PHDEBUG, DEBUG_INFO). Go has no preprocessor, so they
// become a Config value read once, at domain-construction time, from
// environment variables (prefix PRIOSEM_), a config file, or defaults —
// loaded through spf13/viper the way a cobra/viper-based service
// resolve process configuration.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config mirrors what would otherwise be compile-time macros.
type Config struct {
	// PreallocHolders is PREALLOCHOLDERS. Zero selects embedded (two-slot)
	// pool mode; a positive value selects freelist mode with that capacity.
	PreallocHolders int

	// NestDepth is N_NEST. Zero selects simple-mode boosting (no ledger);
	// a positive value selects nested mode with that per-task capacity.
	NestDepth int

	// DebugAssertions gates the verify_holder invariant check, kept behind
	// its own flag, independent of PHDebug.
	DebugAssertions bool

	// PHDebug gates the one-line-per-holder diagnostic dump.
	PHDebug bool

	// DebugInfo gates extra Info-level tracing of boost/restore decisions.
	DebugInfo bool
}

// FreelistMode reports whether the configured pool strategy is the global
// freelist (true) or the embedded two-slot array (false).
func (c Config) FreelistMode() bool { return c.PreallocHolders > 0 }

// NestedMode reports whether boosts accumulate in a per-task ledger (true)
// or apply the simple monotonic rule directly to sched_priority (false).
func (c Config) NestedMode() bool { return c.NestDepth > 0 }

// Default returns the zero-knob configuration: embedded pool, simple-mode
// boosting, all debug instrumentation off — the same defaults the C source
// has when none of its macros are set.
func Default() Config {
	return Config{}
}

// Load resolves a Config from environment variables prefixed PRIOSEM_ (e.g.
// PRIOSEM_PREALLOCHOLDERS, PRIOSEM_N_NEST, PRIOSEM_DEBUG_ASSERTIONS,
// PRIOSEM_PHDEBUG, PRIOSEM_DEBUG_INFO) and, if present, a file at path
// (any format viper supports: yaml, json, toml, ...). File values win over
// unset environment values; explicit environment values win over the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PRIOSEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("preallocholders", 0)
	v.SetDefault("n_nest", 0)
	v.SetDefault("debug_assertions", false)
	v.SetDefault("phdebug", false)
	v.SetDefault("debug_info", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	return Config{
		PreallocHolders: v.GetInt("preallocholders"),
		NestDepth:       v.GetInt("n_nest"),
		DebugAssertions: v.GetBool("debug_assertions"),
		PHDebug:         v.GetBool("phdebug"),
		DebugInfo:       v.GetBool("debug_info"),
	}, nil
}
