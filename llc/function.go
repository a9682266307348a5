package llc

import (
	"github.com/llir/llvm/ir"
)

// function is the native state behind a function value.
type function struct {
	f   *ir.Func
	mod *module

	// Local names, shared by parameters, blocks and instructions.
	names  map[string]int
	blocks []*block
}

// block is the native state behind a BasicBlockRef.  Instructions are kept by
// the underlying ir.Block until a terminator is placed; anything emitted after
// that is recorded in trailing so the verifier can report it.
type block struct {
	b        *ir.Block
	fn       *function
	trailing []any
}

// list returns the instructions of the block in emission order.
func (bb *block) list() []any {
	insts := make([]any, 0, len(bb.b.Insts)+1+len(bb.trailing))
	for _, in := range bb.b.Insts {
		insts = append(insts, in)
	}

	if bb.b.Term != nil {
		insts = append(insts, bb.b.Term)
	}

	return append(insts, bb.trailing...)
}

// BasicBlockRef is an opaque reference to a basic block.
type BasicBlockRef struct {
	b *block
}

// IsNil reports whether the reference points at nothing.
func (r BasicBlockRef) IsNil() bool {
	return r.b == nil
}

func (r BasicBlockRef) live() *block {
	if r.b == nil {
		panic("llc: nil basic block")
	}

	r.b.fn.mod.check()
	return r.b
}

func asFunction(r ValueRef) *function {
	r.c.check()

	f, ok := r.v.(*ir.Func)
	if !ok {
		panic("llc: not a function")
	}

	fn, ok := r.c.funcs[f]
	if !ok {
		panic("llc: function is not registered in its context")
	}

	fn.mod.check()
	return fn
}

// -----------------------------------------------------------------------------

// CountParams returns the number of parameters of a function.
func CountParams(fn ValueRef) uint32 {
	return uint32(len(asFunction(fn).f.Params))
}

// GetParam returns the parameter of a function at index i.
func GetParam(fn ValueRef, i uint32) ValueRef {
	f := asFunction(fn)
	if int(i) >= len(f.f.Params) {
		panic("llc: parameter index out of range")
	}

	return ValueRef{v: f.f.Params[i], c: fn.c}
}

// SetParamName names the parameter of a function at index i.
func SetParamName(fn ValueRef, i uint32, name CString) {
	f := asFunction(fn)
	if int(i) >= len(f.f.Params) {
		panic("llc: parameter index out of range")
	}

	f.f.Params[i].SetName(uniqueName(f.names, goString(name)))
}

// AppendBasicBlockInContext appends a new basic block to the end of fn.  The
// block lives in the context of fn; the context argument is only checked for
// liveness.
func AppendBasicBlockInContext(r ContextRef, fn ValueRef, name CString) BasicBlockRef {
	r.live()
	f := asFunction(fn)

	bb := &block{b: f.f.NewBlock(uniqueName(f.names, goString(name))), fn: f}
	f.blocks = append(f.blocks, bb)
	fn.c.blocks[bb.b] = bb
	allocated()

	return BasicBlockRef{b: bb}
}

// CountBasicBlocks returns the number of blocks of a function.
func CountBasicBlocks(fn ValueRef) uint32 {
	return uint32(len(asFunction(fn).blocks))
}

// GetFirstBasicBlock returns the entry block of a function, or a nil
// reference for a declaration.
func GetFirstBasicBlock(fn ValueRef) BasicBlockRef {
	f := asFunction(fn)
	if len(f.blocks) == 0 {
		return BasicBlockRef{}
	}

	return BasicBlockRef{b: f.blocks[0]}
}

// GetLastBasicBlock returns the last block of a function, or a nil reference
// for a declaration.
func GetLastBasicBlock(fn ValueRef) BasicBlockRef {
	f := asFunction(fn)
	if len(f.blocks) == 0 {
		return BasicBlockRef{}
	}

	return BasicBlockRef{b: f.blocks[len(f.blocks)-1]}
}

// GetNextBasicBlock returns the block following bb, or a nil reference.
func GetNextBasicBlock(r BasicBlockRef) BasicBlockRef {
	bb := r.live()

	blocks := bb.fn.blocks
	for i, other := range blocks {
		if other == bb && i+1 < len(blocks) {
			return BasicBlockRef{b: blocks[i+1]}
		}
	}

	return BasicBlockRef{}
}

// GetBasicBlockName returns the name of a block.
func GetBasicBlockName(r BasicBlockRef) string {
	bb := r.live()
	if bb.b.IsUnnamed() {
		return ""
	}

	return bb.b.Name()
}

// GetBasicBlockParent returns the function containing a block.
func GetBasicBlockParent(r BasicBlockRef) ValueRef {
	bb := r.live()
	return ValueRef{v: bb.fn.f, c: bb.fn.mod.c}
}

// GetBasicBlockContext returns the context owning a block.
func GetBasicBlockContext(r BasicBlockRef) ContextRef {
	return ContextRef{c: r.live().fn.mod.c}
}

// GetFirstInstruction returns the first instruction of a block, or a nil
// reference if it is empty.
func GetFirstInstruction(r BasicBlockRef) ValueRef {
	bb := r.live()

	insts := bb.list()
	if len(insts) == 0 {
		return ValueRef{}
	}

	return ValueRef{v: insts[0], c: bb.fn.mod.c}
}

// GetLastInstruction returns the last instruction of a block, or a nil
// reference if it is empty.
func GetLastInstruction(r BasicBlockRef) ValueRef {
	bb := r.live()

	insts := bb.list()
	if len(insts) == 0 {
		return ValueRef{}
	}

	return ValueRef{v: insts[len(insts)-1], c: bb.fn.mod.c}
}

// GetNextInstruction returns the instruction following v in its block, or a
// nil reference at the end.
func GetNextInstruction(v ValueRef) ValueRef {
	in := asInstruction(v)

	insts := in.parent.list()
	for i, other := range insts {
		if other == v.v && i+1 < len(insts) {
			return ValueRef{v: insts[i+1], c: v.c}
		}
	}

	return ValueRef{}
}

// CountInstructions returns the number of instructions in a block.
func CountInstructions(r BasicBlockRef) uint32 {
	return uint32(len(r.live().list()))
}

// GetBasicBlockTerminator returns the terminator of a block if the block
// ends in one, otherwise a nil reference.
func GetBasicBlockTerminator(r BasicBlockRef) ValueRef {
	bb := r.live()

	if bb.b.Term == nil || len(bb.trailing) > 0 {
		return ValueRef{}
	}

	return ValueRef{v: bb.b.Term, c: bb.fn.mod.c}
}
