package llvm

import (
	"irkit/llc"
)

// Builder represents an instruction builder.  A builder starts unpositioned;
// PositionAtEnd sets the block that subsequent instructions are appended to.
// Instruction methods that take a name return ErrInvalidName if it contains a
// NUL byte, in which case nothing is emitted.
type Builder struct {
	c   llc.BuilderRef
	ctx *Context

	disposed bool
}

// dispose disposes of the builder if that has not happened already.
func (b *Builder) dispose() {
	if b.disposed {
		return
	}

	llc.DisposeBuilder(b.c)
	b.disposed = true
}

// Dispose frees the builder.  Calls after the first, including the one made
// when the owning context is disposed, have no effect.
func (b *Builder) Dispose() {
	b.dispose()
}

// Ref returns the native builder reference.
func (b *Builder) Ref() llc.BuilderRef {
	return b.c
}

// check asserts that the builder can emit op.
func (b *Builder) check(op string) {
	if debugChecks {
		assertPositioned(b, op)
	}
}

// -----------------------------------------------------------------------------

// InsertBlock returns the block the builder is positioned at, if any.
func (b *Builder) InsertBlock() (bb BasicBlock, positioned bool) {
	bb.c = llc.GetInsertBlock(b.c)
	positioned = !bb.c.IsNil()
	return
}

// PositionAtEnd moves the builder to the end of bb.
func (b *Builder) PositionAtEnd(bb BasicBlock) {
	if debugChecks {
		assertSameContext(b.ctx, llc.GetBasicBlockContext(bb.c), "PositionAtEnd block")
	}

	llc.PositionBuilderAtEnd(b.c, bb.c)
}

// ClearInsertionPosition unpositions the builder.
func (b *Builder) ClearInsertionPosition() {
	llc.ClearInsertionPosition(b.c)
}

// -----------------------------------------------------------------------------

// Ret builds a `ret` instruction returning v.
func (b *Builder) Ret(v Value) (ret Terminator) {
	b.check("ret")
	ret.c = llc.BuildRet(b.c, v.ptr())
	return
}

// RetVoid builds a `ret void` instruction.
func (b *Builder) RetVoid() (ret Terminator) {
	b.check("ret void")
	ret.c = llc.BuildRetVoid(b.c)
	return
}

// Br builds an unconditional `br` instruction.
func (b *Builder) Br(dest BasicBlock) (br Terminator) {
	b.check("br")
	br.c = llc.BuildBr(b.c, dest.c)
	return
}

// CondBr builds a conditional `br` instruction.
func (b *Builder) CondBr(cond Value, thenBlock, elseBlock BasicBlock) (cbr Terminator) {
	b.check("br")
	cbr.c = llc.BuildCondBr(b.c, cond.ptr(), thenBlock.c, elseBlock.c)
	return
}

// Unreachable builds an `unreachable` instruction.
func (b *Builder) Unreachable() (un Terminator) {
	b.check("unreachable")
	un.c = llc.BuildUnreachable(b.c)
	return
}

// -----------------------------------------------------------------------------

// Alloca builds an `alloca` instruction.
func (b *Builder) Alloca(typ Type, name string) (ai AllocaInstruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("alloca")
	ai.c = llc.BuildAlloca(b.c, typ.ptr(), cname)
	return
}

// Store builds a `store` instruction.
func (b *Builder) Store(v, ptr Value) (in Instruction) {
	b.check("store")
	in.c = llc.BuildStore(b.c, v.ptr(), ptr.ptr())
	return
}

// Load builds a `load` instruction.  The loaded type is the element type of
// ptr.
func (b *Builder) Load(ptr Value, name string) (in Instruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("load")
	in.c = llc.BuildLoad(b.c, ptr.ptr(), cname)
	return
}

// GEP builds a `getelementptr` instruction.
func (b *Builder) GEP(ptr Value, indices []Value, name string) (gep GEPInstruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("getelementptr")
	gep.c = llc.BuildGEP(b.c, ptr.ptr(), valueRefs(indices), count(len(indices)), cname)
	return
}

// InBoundsGEP builds a `getelementptr inbounds` instruction.
func (b *Builder) InBoundsGEP(ptr Value, indices []Value, name string) (gep GEPInstruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("getelementptr inbounds")
	gep.c = llc.BuildInBoundsGEP(b.c, ptr.ptr(), valueRefs(indices), count(len(indices)), cname)
	return
}

// InsertValue builds an `insertvalue` instruction.
func (b *Builder) InsertValue(agg, elt Value, index uint32, name string) (in Instruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("insertvalue")
	in.c = llc.BuildInsertValue(b.c, agg.ptr(), elt.ptr(), index, cname)
	return
}

// ExtractValue builds an `extractvalue` instruction.
func (b *Builder) ExtractValue(agg Value, index uint32, name string) (in Instruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("extractvalue")
	in.c = llc.BuildExtractValue(b.c, agg.ptr(), index, cname)
	return
}

// -----------------------------------------------------------------------------

// binaryBuilder is the signature shared by the native binary operators.
type binaryBuilder func(llc.BuilderRef, llc.ValueRef, llc.ValueRef, llc.CString) llc.ValueRef

func (b *Builder) binary(op string, build binaryBuilder, lhs, rhs Value, name string) (in Instruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check(op)
	in.c = build(b.c, lhs.ptr(), rhs.ptr(), cname)
	return
}

// Add builds an `add` instruction.
func (b *Builder) Add(lhs, rhs Value, name string) (Instruction, error) {
	return b.binary("add", llc.BuildAdd, lhs, rhs, name)
}

// Sub builds a `sub` instruction.
func (b *Builder) Sub(lhs, rhs Value, name string) (Instruction, error) {
	return b.binary("sub", llc.BuildSub, lhs, rhs, name)
}

// Mul builds a `mul` instruction.
func (b *Builder) Mul(lhs, rhs Value, name string) (Instruction, error) {
	return b.binary("mul", llc.BuildMul, lhs, rhs, name)
}

// SDiv builds an `sdiv` instruction.
func (b *Builder) SDiv(lhs, rhs Value, name string) (Instruction, error) {
	return b.binary("sdiv", llc.BuildSDiv, lhs, rhs, name)
}

// And builds an `and` instruction.
func (b *Builder) And(lhs, rhs Value, name string) (Instruction, error) {
	return b.binary("and", llc.BuildAnd, lhs, rhs, name)
}

// Or builds an `or` instruction.
func (b *Builder) Or(lhs, rhs Value, name string) (Instruction, error) {
	return b.binary("or", llc.BuildOr, lhs, rhs, name)
}

// Xor builds an `xor` instruction.
func (b *Builder) Xor(lhs, rhs Value, name string) (Instruction, error) {
	return b.binary("xor", llc.BuildXor, lhs, rhs, name)
}

// Neg builds the integer negation of v, emitted as `sub 0, v`.
func (b *Builder) Neg(v Value, name string) (in Instruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("neg")
	in.c = llc.BuildNeg(b.c, v.ptr(), cname)
	return
}

// Not builds the bitwise complement of v, emitted as `xor v, -1`.
func (b *Builder) Not(v Value, name string) (in Instruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("not")
	in.c = llc.BuildNot(b.c, v.ptr(), cname)
	return
}

// ICmp builds an `icmp` instruction.
func (b *Builder) ICmp(pred IntPredicate, lhs, rhs Value, name string) (ici ICmpInstruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("icmp")
	ici.c = llc.BuildICmp(b.c, llc.IntPredicate(pred), lhs.ptr(), rhs.ptr(), cname)
	return
}

// -----------------------------------------------------------------------------

// Call builds a `call` instruction.  The name is ignored when fn returns
// void.
func (b *Builder) Call(fn Function, args []Value, name string) (ci CallInstruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check("call")
	ci.c = llc.BuildCall(b.c, fn.c, valueRefs(args), count(len(args)), cname)
	return
}

// -----------------------------------------------------------------------------

// castBuilder is the signature shared by the native cast instructions.
type castBuilder func(llc.BuilderRef, llc.ValueRef, llc.TypeRef, llc.CString) llc.ValueRef

func (b *Builder) cast(op string, build castBuilder, v Value, destType Type, name string) (in Instruction, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	b.check(op)
	in.c = build(b.c, v.ptr(), destType.ptr(), cname)
	return
}

// BitCast builds a `bitcast` instruction.
func (b *Builder) BitCast(v Value, destType Type, name string) (Instruction, error) {
	return b.cast("bitcast", llc.BuildBitCast, v, destType, name)
}

// PtrToInt builds a `ptrtoint` instruction.
func (b *Builder) PtrToInt(v Value, destType Type, name string) (Instruction, error) {
	return b.cast("ptrtoint", llc.BuildPtrToInt, v, destType, name)
}

// IntToPtr builds an `inttoptr` instruction.
func (b *Builder) IntToPtr(v Value, destType Type, name string) (Instruction, error) {
	return b.cast("inttoptr", llc.BuildIntToPtr, v, destType, name)
}

// SExt builds a `sext` instruction.
func (b *Builder) SExt(v Value, destType Type, name string) (Instruction, error) {
	return b.cast("sext", llc.BuildSExt, v, destType, name)
}

// ZExt builds a `zext` instruction.
func (b *Builder) ZExt(v Value, destType Type, name string) (Instruction, error) {
	return b.cast("zext", llc.BuildZExt, v, destType, name)
}

// Trunc builds a `trunc` instruction.
func (b *Builder) Trunc(v Value, destType Type, name string) (Instruction, error) {
	return b.cast("trunc", llc.BuildTrunc, v, destType, name)
}

// -----------------------------------------------------------------------------

// GlobalString defines a private constant global holding text and a
// terminating NUL in the module of the current block, and returns a pointer
// to it.  Text containing a NUL byte is rejected with ErrInvalidText.
func (b *Builder) GlobalString(text, name string) (gv GlobalValue, err error) {
	ctext, cname, err := globalStringArgs(text, name)
	if err != nil {
		return
	}

	b.check("global string")
	gv.c = llc.BuildGlobalString(b.c, ctext, cname)
	return
}

// GlobalStringPtr is GlobalString but returns an `i8*` to the first
// character.
func (b *Builder) GlobalStringPtr(text, name string) (c Constant, err error) {
	ctext, cname, err := globalStringArgs(text, name)
	if err != nil {
		return
	}

	b.check("global string")
	c.c = llc.BuildGlobalStringPtr(b.c, ctext, cname)
	return
}

func globalStringArgs(text, name string) (ctext, cname llc.CString, err error) {
	if err = checkText(ErrInvalidText, text); err != nil {
		return
	}

	if cname, err = cstring(name); err != nil {
		return
	}

	ctext = llc.NewCString(text)
	return
}

// -----------------------------------------------------------------------------

func valueRefs(vs []Value) []llc.ValueRef {
	refs := make([]llc.ValueRef, len(vs))
	for i, v := range vs {
		refs[i] = v.ptr()
	}

	return refs
}
