//go:build !irdebug

package llvm

const debugChecks = false
