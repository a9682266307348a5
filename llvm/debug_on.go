//go:build irdebug

package llvm

// debugChecks enables the ownership and cursor assertions.
const debugChecks = true
