package llvm

import (
	"fmt"

	"irkit/llc"
)

// The assertions below are only reached when the package is built with the
// irdebug tag.  Without it the native layer trusts its caller, and misuse is
// undefined.

// assertSameContext panics if the object described by what belongs to a
// context other than c.
func assertSameContext(c *Context, owner llc.ContextRef, what string) {
	if owner != c.c {
		panic(fmt.Sprintf("llvm: %s belongs to context %s, not %s", what, llc.ContextID(owner), c.ID()))
	}
}

// assertPositioned panics if the builder has no insertion block.
func assertPositioned(b *Builder, op string) {
	if llc.GetInsertBlock(b.c).IsNil() {
		panic(fmt.Sprintf("llvm: %s emitted by a builder of context %s that is not positioned at a block", op, b.ctx.ID()))
	}
}
