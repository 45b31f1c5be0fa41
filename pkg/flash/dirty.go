package flash

import "sync/atomic"

var dirty atomic.Bool

// SetDirty tells downstream consumers that cached assumptions about flash
// contents must be revalidated.
func SetDirty() { dirty.Store(true) }

// Dirty reports whether flash has been modified since the last ClearDirty.
func Dirty() bool { return dirty.Load() }

// ClearDirty resets the dirty flag.
func ClearDirty() { dirty.Store(false) }
