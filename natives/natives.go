/*
Package natives provides the global functions every interpreter instance
preloads into its top environment: `clock()` and `environment()`, grounded
on original_source/python/LoxCallable.py's Clock and GetEnvironmentString.
These are the only two the source material ships; no general-purpose
standard library beyond them is in scope.
*/
package natives

import (
	"time"

	"github.com/gomix-lang/golox/runtime"
	"github.com/gomix-lang/golox/value"
)

// Register builds the fixed set of native globals. Names lists the same
// identifiers, in no particular order, for callers (the resolver) that need
// to know every name bound in the true global scope ahead of time.
func Register() (fns map[string]*runtime.NativeFunction, names []string) {
	fns = map[string]*runtime.NativeFunction{
		"clock": {
			Name:       "clock",
			ArityValue: 0,
			Fn: func(rt runtime.NativeRuntime, args []value.Value) (value.Value, error) {
				return value.Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
			},
		},
		"environment": {
			Name:       "environment",
			ArityValue: 0,
			Fn: func(rt runtime.NativeRuntime, args []value.Value) (value.Value, error) {
				return value.String(rt.CurrentEnvironment().Dump()), nil
			},
		},
	}
	for name := range fns {
		names = append(names, name)
	}
	return fns, names
}
