package llc

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// context is the native state behind a ContextRef.  Types are uniqued per
// context and every function, block and instruction created in the context is
// registered here so that parent links can be recovered from a bare reference.
type context struct {
	id       uuid.UUID
	disposed bool

	ints     map[uint64]*types.IntType
	pointers map[types.Type]*types.PointerType

	// Named struct types in order of creation.
	structs    []*types.StructType
	structName map[string]int

	funcs  map[*ir.Func]*function
	blocks map[*ir.Block]*block
	insts  map[any]*inst
}

// ContextRef is an opaque reference to a native context.
type ContextRef struct {
	c *context
}

// IsNil reports whether the reference points at nothing.
func (r ContextRef) IsNil() bool {
	return r.c == nil
}

// ContextCreate creates a new context.
func ContextCreate() ContextRef {
	stats.contextsCreated.Add(1)
	allocated()

	return ContextRef{c: &context{
		id:         uuid.Must(uuid.NewV7()),
		ints:       make(map[uint64]*types.IntType),
		pointers:   make(map[types.Type]*types.PointerType),
		structName: make(map[string]int),
		funcs:      make(map[*ir.Func]*function),
		blocks:     make(map[*ir.Block]*block),
		insts:      make(map[any]*inst),
	}}
}

// ContextDispose releases a context.  Disposing a context twice aborts.
func ContextDispose(r ContextRef) {
	c := r.live()
	c.disposed = true

	c.ints = nil
	c.pointers = nil
	c.structs = nil
	c.funcs = nil
	c.blocks = nil
	c.insts = nil

	stats.contextsDisposed.Add(1)
}

// ContextID returns the unique identifier of a context.
func ContextID(r ContextRef) uuid.UUID {
	return r.live().id
}

// live returns the context behind r, aborting if it is nil or disposed.
func (r ContextRef) live() *context {
	if r.c == nil {
		panic("llc: nil context")
	}

	r.c.check()
	return r.c
}

func (c *context) check() {
	if c == nil {
		panic("llc: reference has no context")
	}

	if c.disposed {
		panic("llc: use of disposed context " + c.id.String())
	}
}

// -----------------------------------------------------------------------------

// uniqueName returns name if it is not in used, otherwise name suffixed with
// the smallest counter that is free.  The empty name is never uniqued.
func uniqueName(used map[string]int, name string) string {
	if name == "" {
		return ""
	}

	n, ok := used[name]
	if !ok {
		used[name] = 0
		return name
	}

	for {
		n++
		candidate := name + strconv.Itoa(n)
		if _, taken := used[candidate]; !taken {
			used[name] = n
			used[candidate] = 0
			return candidate
		}
	}
}
