//go:build !noforce

package forcetypes

import (
	"sync/atomic"

	"github.com/saylorsolutions/forcetypes/internal/env"
)

var disabled atomic.Bool

func init() {
	disabled.Store(env.Bool(env.Disable, false))
}

// Disable will disable validation globally.
// Wrapped callables are still invoked, and binding errors are still reported.
// This is concurrency safe, but affects every goroutine that calls a wrapped callable.
func Disable() {
	disabled.Store(true)
}

// Enable re-enables validation if [Disable] was called previously, or FORCETYPES_DISABLE was set.
func Enable() {
	disabled.Store(false)
}

// Enabled reports whether validation is currently enabled.
func Enabled() bool {
	return !disabled.Load()
}
