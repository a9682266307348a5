package llvm

import (
	"github.com/google/uuid"

	"irkit/llc"
)

// Context represents a native context.  Types, constants, modules and builders
// created from a context are only valid while it is alive.
type Context struct {
	c llc.ContextRef

	// The list of native objects owned by this context in order of creation.
	ownedObjects []ownedObject

	disposed bool
}

// NewContext creates a new context.
func NewContext() *Context {
	return &Context{c: llc.ContextCreate()}
}

// takeOwnership marks the given disposable native object as being owned by
// this context: this context is responsible for its disposal if the caller
// has not disposed it first.
func (c *Context) takeOwnership(obj ownedObject) {
	c.ownedObjects = append(c.ownedObjects, obj)
}

// Dispose frees all the resources associated with this context: the owned
// builders and modules that are still alive, in reverse order of creation, and
// then the context itself.  Calls after the first have no effect.
func (c *Context) Dispose() {
	if c.disposed {
		return
	}

	for i := len(c.ownedObjects) - 1; i >= 0; i-- {
		c.ownedObjects[i].dispose()
	}

	c.ownedObjects = nil
	llc.ContextDispose(c.c)
	c.disposed = true
}

// Ref returns the native context reference.
func (c *Context) Ref() llc.ContextRef {
	return c.c
}

// ID returns the unique identifier of the context.
func (c *Context) ID() uuid.UUID {
	return llc.ContextID(c.c)
}

// -----------------------------------------------------------------------------

// NewBuilder creates a new, unpositioned instruction builder in the context.
func (c *Context) NewBuilder() *Builder {
	b := &Builder{c: llc.CreateBuilderInContext(c.c), ctx: c}
	c.takeOwnership(b)
	return b
}

// NewModule creates a new, empty module with the given name in the context.
func (c *Context) NewModule(name string) (*Module, error) {
	cname, err := cstring(name)
	if err != nil {
		return nil, err
	}

	m := &Module{c: llc.ModuleCreateWithNameInContext(cname, c.c), ctx: c}
	c.takeOwnership(m)
	return m, nil
}

// AppendBasicBlock appends a new basic block named name to the end of fn.
func (c *Context) AppendBasicBlock(fn Function, name string) (bb BasicBlock, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	if debugChecks {
		assertSameContext(c, llc.GetValueContext(fn.c), "AppendBasicBlock function")
	}

	bb.c = llc.AppendBasicBlockInContext(c.c, fn.c, cname)
	return
}

// -----------------------------------------------------------------------------

// Const materializes a host value as a constant in the context.
func (c *Context) Const(v ConstProducer) Constant {
	return v.MaterializeConst(c)
}

// ConstString creates a character array constant holding text followed by a
// terminating NUL.  Text containing a NUL byte is rejected.
func (c *Context) ConstString(text string) (cs Constant, err error) {
	if err = checkText(ErrInvalidText, text); err != nil {
		return
	}

	cs.c = llc.ConstStringInContext(c.c, []byte(text), count(len(text)), false)
	return
}

// TypeFor resolves the type marker T to a type in the context.
func TypeFor[T TypeProducer](c *Context) Type {
	var marker T
	return marker.ResolveType(c)
}
