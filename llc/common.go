// Package llc is the native IR construction layer.  It exposes a flat,
// handle-based API in the shape of the LLVM C API: every object is reached
// through an opaque reference, owners are created and disposed explicitly, and
// misuse of a reference (use after dispose, double dispose, emitting without an
// insertion block) aborts the program with a panic rather than returning an
// error.  The IR itself is represented with github.com/llir/llvm.
package llc

import (
	"bytes"
	"sync/atomic"
)

// CString is a NUL-terminated byte string as passed across the native
// boundary.  Only the bytes before the first NUL are significant.
type CString []byte

// NewCString returns s with a terminating NUL appended.  It does not check s
// for interior NULs: the native layer simply stops reading at the first one.
func NewCString(s string) CString {
	cs := make(CString, len(s)+1)
	copy(cs, s)
	return cs
}

// goString reads a CString up to its terminator.  A missing terminator is an
// out-of-bounds read in native code, so it aborts.
func goString(cs CString) string {
	n := bytes.IndexByte(cs, 0)
	if n < 0 {
		panic("llc: unterminated string")
	}

	return string(cs[:n])
}

// -----------------------------------------------------------------------------

// Stats is a snapshot of the native layer's lifetime counters.  The counters
// are process-wide and only ever increase.
type Stats struct {
	ContextsCreated  int64
	ContextsDisposed int64
	BuildersCreated  int64
	BuildersDisposed int64
	ModulesCreated   int64
	ModulesDisposed  int64

	// Allocations counts every call that minted a new native object:
	// contexts, builders, modules, types, constants, functions, blocks and
	// instructions.
	Allocations int64
}

var stats struct {
	contextsCreated, contextsDisposed atomic.Int64
	buildersCreated, buildersDisposed atomic.Int64
	modulesCreated, modulesDisposed   atomic.Int64
	allocations                       atomic.Int64
}

// ReadStats returns the current value of the lifetime counters.
func ReadStats() Stats {
	return Stats{
		ContextsCreated:  stats.contextsCreated.Load(),
		ContextsDisposed: stats.contextsDisposed.Load(),
		BuildersCreated:  stats.buildersCreated.Load(),
		BuildersDisposed: stats.buildersDisposed.Load(),
		ModulesCreated:   stats.modulesCreated.Load(),
		ModulesDisposed:  stats.modulesDisposed.Load(),
		Allocations:      stats.allocations.Load(),
	}
}

// allocated records the minting of one native object.
func allocated() {
	stats.allocations.Add(1)
}
