// Package llvm is an ownership-managed API for building IR on top of the
// native llc layer.  A Context owns the native context and every Builder and
// Module created from it; types, values and blocks are plain copyable handles
// whose lifetime is pinned to the owning Context.
package llvm

import (
	"fmt"

	"fortio.org/safecast"
)

// ownedObject represents a native object that can be disposed.
type ownedObject interface {
	// dispose frees the native object.  It must be safe to call more than
	// once: only the first call has an effect.
	dispose()
}

// -----------------------------------------------------------------------------

// Iterator represents an iterator of IR objects.  The native layer exposes
// sibling links rather than indexable lists for many collections, so they are
// walked as follows:
//
//	for it := v.Items(); it.Next(); {
//		item := it.Item()
//		..
//	}
type Iterator[T any] interface {
	// Item returns the current item the iterator is positioned over if it
	// exists.  If the item does not exist, the return value is invalid.
	Item() T

	// Next moves the iterator forward one element if an element exists. It
	// returns whether or not it was able to move the iterator forward. Next
	// should be called to get the first element.
	Next() bool
}

// -----------------------------------------------------------------------------

// count converts a Go length into a native element count.
func count(n int) uint32 {
	c, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Sprintf("llvm: count %d does not fit the native layer: %s", n, err))
	}

	return c
}
