// Package assert provides the invariant check used to guard the batcher's
// per-item vertex/index counts (spec §8 property 6).
package assert

import "fmt"

// T panics with msg if check is false. Unlike the teacher's debug-only
// assert.T (gated on a build-mode constant that doesn't exist in a library
// with no build-tag concept of its own), invariant breaks here are
// programmer errors per spec §7 ("Fatal (programmer error)") and are always
// checked, in release builds too.
func T(check bool, msg string, args ...any) {
	if !check {
		// Sprintf is done inside the assert, same as the teacher's version, so that
		// a passing assertion never pays for formatting the message.
		panic("Assert failed: " + fmt.Sprintf(msg, args...))
	}
}
