package llc

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// builder is the native state behind a BuilderRef.
type builder struct {
	c        *context
	at       *block
	disposed bool
}

// BuilderRef is an opaque reference to an instruction builder.
type BuilderRef struct {
	b *builder
}

// IsNil reports whether the reference points at nothing.
func (r BuilderRef) IsNil() bool {
	return r.b == nil
}

func (r BuilderRef) live() *builder {
	if r.b == nil {
		panic("llc: nil builder")
	}

	if r.b.disposed {
		panic("llc: use of disposed builder")
	}

	r.b.c.check()
	return r.b
}

// CreateBuilderInContext creates an unpositioned builder.
func CreateBuilderInContext(r ContextRef) BuilderRef {
	c := r.live()

	stats.buildersCreated.Add(1)
	allocated()

	return BuilderRef{b: &builder{c: c}}
}

// DisposeBuilder releases a builder.  A builder does not depend on its
// context staying alive to be released, but disposing it twice aborts.
func DisposeBuilder(r BuilderRef) {
	if r.b == nil {
		panic("llc: nil builder")
	}

	if r.b.disposed {
		panic("llc: builder disposed twice")
	}

	r.b.disposed = true
	r.b.at = nil
	stats.buildersDisposed.Add(1)
}

// GetBuilderContext returns the context a builder was created in.
func GetBuilderContext(r BuilderRef) ContextRef {
	return ContextRef{c: r.live().c}
}

// PositionBuilderAtEnd moves the builder's cursor to the end of bb.
func PositionBuilderAtEnd(r BuilderRef, bb BasicBlockRef) {
	r.live().at = bb.live()
}

// ClearInsertionPosition unpositions the builder.
func ClearInsertionPosition(r BuilderRef) {
	r.live().at = nil
}

// GetInsertBlock returns the block the builder is positioned at, or a nil
// reference if it is unpositioned.
func GetInsertBlock(r BuilderRef) BasicBlockRef {
	b := r.live()
	if b.at == nil {
		return BasicBlockRef{}
	}

	return BasicBlockRef{b: b.at}
}

// cursor returns the insertion block, aborting if there is none.
func (b *builder) cursor() *block {
	if b.at == nil {
		panic("llc: builder has no insertion block")
	}

	b.at.fn.mod.check()
	return b.at
}

// emit appends in at the cursor and records it.  A non-empty name is made
// unique within the enclosing function.
func (b *builder) emit(node any, name string, rec inst) ValueRef {
	bb := b.cursor()

	if n, ok := node.(value.Named); ok && name != "" {
		n.SetName(uniqueName(bb.fn.names, name))
	}

	switch {
	case bb.b.Term != nil:
		bb.trailing = append(bb.trailing, node)
	case isTerminator(rec.op):
		bb.b.Term = node.(ir.Terminator)
	default:
		bb.b.Insts = append(bb.b.Insts, node.(ir.Instruction))
	}

	rec.parent = bb
	c := bb.fn.mod.c
	c.insts[node] = &rec
	allocated()

	return ValueRef{v: node, c: c}
}

func isTerminator(op Opcode) bool {
	return op == Ret || op == Br || op == Unreachable
}

func operands(refs []ValueRef, count uint32) []value.Value {
	if int(count) > len(refs) {
		panic("llc: value array shorter than its count")
	}

	vs := make([]value.Value, count)
	for i := range vs {
		vs[i] = refs[i].operand()
	}

	return vs
}

// -----------------------------------------------------------------------------

// BuildRet builds a `ret` of v.
func BuildRet(r BuilderRef, v ValueRef) ValueRef {
	x := v.operand()
	return r.live().emit(ir.NewRet(x), "", inst{op: Ret, operands: []value.Value{x}})
}

// BuildRetVoid builds a `ret void`.
func BuildRetVoid(r BuilderRef) ValueRef {
	return r.live().emit(ir.NewRet(nil), "", inst{op: Ret})
}

// BuildBr builds an unconditional branch to dest.
func BuildBr(r BuilderRef, dest BasicBlockRef) ValueRef {
	d := dest.live()
	return r.live().emit(ir.NewBr(d.b), "", inst{op: Br, succs: []*block{d}})
}

// BuildCondBr builds a conditional branch on cond.
func BuildCondBr(r BuilderRef, cond ValueRef, then, els BasicBlockRef) ValueRef {
	x, t, e := cond.operand(), then.live(), els.live()
	return r.live().emit(ir.NewCondBr(x, t.b, e.b), "", inst{
		op:       Br,
		operands: []value.Value{x},
		succs:    []*block{t, e},
	})
}

// BuildUnreachable builds an `unreachable`.
func BuildUnreachable(r BuilderRef) ValueRef {
	return r.live().emit(ir.NewUnreachable(), "", inst{op: Unreachable})
}

// -----------------------------------------------------------------------------

// BuildAlloca builds a stack allocation of one t.
func BuildAlloca(r BuilderRef, t TypeRef, name CString) ValueRef {
	et := t.live()
	return r.live().emit(ir.NewAlloca(et), goString(name), inst{op: Alloca, allocated: et})
}

// BuildStore builds a store of val through ptr.
func BuildStore(r BuilderRef, val, ptr ValueRef) ValueRef {
	src, dst := val.operand(), ptr.operand()
	return r.live().emit(ir.NewStore(src, dst), "", inst{op: Store, operands: []value.Value{src, dst}})
}

// BuildLoad builds a load through ptr.  The loaded type is the element type
// of ptr's type.
func BuildLoad(r BuilderRef, ptr ValueRef, name CString) ValueRef {
	src := ptr.operand()
	return r.live().emit(ir.NewLoad(pointee(src), src), goString(name), inst{op: Load, operands: []value.Value{src}})
}

// BuildGEP builds a `getelementptr`.  Only the first count indices are read.
func BuildGEP(r BuilderRef, ptr ValueRef, indices []ValueRef, count uint32, name CString) ValueRef {
	return buildGEP(r, ptr, indices, count, name, false)
}

// BuildInBoundsGEP builds a `getelementptr inbounds`.
func BuildInBoundsGEP(r BuilderRef, ptr ValueRef, indices []ValueRef, count uint32, name CString) ValueRef {
	return buildGEP(r, ptr, indices, count, name, true)
}

func buildGEP(r BuilderRef, ptr ValueRef, indices []ValueRef, count uint32, name CString, inBounds bool) ValueRef {
	src := ptr.operand()
	idx := operands(indices, count)

	gep := ir.NewGetElementPtr(pointee(src), src, idx...)
	gep.InBounds = inBounds

	return r.live().emit(gep, goString(name), inst{
		op:       GetElementPtr,
		operands: append([]value.Value{src}, idx...),
		inBounds: inBounds,
	})
}

func pointee(v value.Value) types.Type {
	pt, ok := v.Type().(*types.PointerType)
	if !ok {
		panic("llc: operand is not a pointer")
	}

	return pt.ElemType
}

// BuildInsertValue builds an `insertvalue` of elt into agg at index.
func BuildInsertValue(r BuilderRef, agg, elt ValueRef, index uint32, name CString) ValueRef {
	x, e := agg.operand(), elt.operand()
	return r.live().emit(ir.NewInsertValue(x, e, uint64(index)), goString(name), inst{
		op:       InsertValue,
		operands: []value.Value{x, e},
	})
}

// BuildExtractValue builds an `extractvalue` of agg at index.
func BuildExtractValue(r BuilderRef, agg ValueRef, index uint32, name CString) ValueRef {
	x := agg.operand()
	return r.live().emit(ir.NewExtractValue(x, uint64(index)), goString(name), inst{
		op:       ExtractValue,
		operands: []value.Value{x},
	})
}

// -----------------------------------------------------------------------------

// BuildAdd builds an `add`.
func BuildAdd(r BuilderRef, lhs, rhs ValueRef, name CString) ValueRef {
	x, y := lhs.operand(), rhs.operand()
	return r.live().emit(ir.NewAdd(x, y), goString(name), binary(Add, x, y))
}

// BuildSub builds a `sub`.
func BuildSub(r BuilderRef, lhs, rhs ValueRef, name CString) ValueRef {
	x, y := lhs.operand(), rhs.operand()
	return r.live().emit(ir.NewSub(x, y), goString(name), binary(Sub, x, y))
}

// BuildMul builds a `mul`.
func BuildMul(r BuilderRef, lhs, rhs ValueRef, name CString) ValueRef {
	x, y := lhs.operand(), rhs.operand()
	return r.live().emit(ir.NewMul(x, y), goString(name), binary(Mul, x, y))
}

// BuildSDiv builds an `sdiv`.
func BuildSDiv(r BuilderRef, lhs, rhs ValueRef, name CString) ValueRef {
	x, y := lhs.operand(), rhs.operand()
	return r.live().emit(ir.NewSDiv(x, y), goString(name), binary(SDiv, x, y))
}

// BuildAnd builds an `and`.
func BuildAnd(r BuilderRef, lhs, rhs ValueRef, name CString) ValueRef {
	x, y := lhs.operand(), rhs.operand()
	return r.live().emit(ir.NewAnd(x, y), goString(name), binary(And, x, y))
}

// BuildOr builds an `or`.
func BuildOr(r BuilderRef, lhs, rhs ValueRef, name CString) ValueRef {
	x, y := lhs.operand(), rhs.operand()
	return r.live().emit(ir.NewOr(x, y), goString(name), binary(Or, x, y))
}

// BuildXor builds an `xor`.
func BuildXor(r BuilderRef, lhs, rhs ValueRef, name CString) ValueRef {
	x, y := lhs.operand(), rhs.operand()
	return r.live().emit(ir.NewXor(x, y), goString(name), binary(Xor, x, y))
}

// BuildNeg builds the integer negation of v as `sub 0, v`.
func BuildNeg(r BuilderRef, v ValueRef, name CString) ValueRef {
	y := v.operand()
	x := constant.NewInt(intType(y), 0)
	return r.live().emit(ir.NewSub(x, y), goString(name), binary(Sub, x, y))
}

// BuildNot builds the bitwise complement of v as `xor v, -1`.
func BuildNot(r BuilderRef, v ValueRef, name CString) ValueRef {
	x := v.operand()
	y := constant.NewInt(intType(x), -1)
	return r.live().emit(ir.NewXor(x, y), goString(name), binary(Xor, x, y))
}

func binary(op Opcode, x, y value.Value) inst {
	return inst{op: op, operands: []value.Value{x, y}}
}

func intType(v value.Value) *types.IntType {
	it, ok := v.Type().(*types.IntType)
	if !ok {
		panic("llc: operand is not an integer")
	}

	return it
}

var ipreds = map[IntPredicate]enum.IPred{
	IntEQ:  enum.IPredEQ,
	IntNE:  enum.IPredNE,
	IntUGT: enum.IPredUGT,
	IntUGE: enum.IPredUGE,
	IntULT: enum.IPredULT,
	IntULE: enum.IPredULE,
	IntSGT: enum.IPredSGT,
	IntSGE: enum.IPredSGE,
	IntSLT: enum.IPredSLT,
	IntSLE: enum.IPredSLE,
}

// BuildICmp builds an `icmp` with predicate pred.
func BuildICmp(r BuilderRef, pred IntPredicate, lhs, rhs ValueRef, name CString) ValueRef {
	p, ok := ipreds[pred]
	if !ok {
		panic("llc: invalid integer predicate")
	}

	x, y := lhs.operand(), rhs.operand()
	rec := binary(ICmp, x, y)
	rec.pred = pred

	return r.live().emit(ir.NewICmp(p, x, y), goString(name), rec)
}

// -----------------------------------------------------------------------------

// BuildCall builds a call of fn with the first count entries of args.  A
// call to a void function is never named.
func BuildCall(r BuilderRef, fn ValueRef, args []ValueRef, count uint32, name CString) ValueRef {
	callee := fn.operand()
	vs := operands(args, count)

	call := ir.NewCall(callee, vs...)

	n := goString(name)
	if _, void := call.Type().(*types.VoidType); void {
		n = ""
	}

	return r.live().emit(call, n, inst{op: Call, operands: append(vs, callee)})
}

// -----------------------------------------------------------------------------

// BuildBitCast builds a `bitcast` of v to t.
func BuildBitCast(r BuilderRef, v ValueRef, t TypeRef, name CString) ValueRef {
	x, to := v.operand(), t.live()
	return r.live().emit(ir.NewBitCast(x, to), goString(name), cast(BitCast, x))
}

// BuildPtrToInt builds a `ptrtoint` of v to t.
func BuildPtrToInt(r BuilderRef, v ValueRef, t TypeRef, name CString) ValueRef {
	x, to := v.operand(), t.live()
	return r.live().emit(ir.NewPtrToInt(x, to), goString(name), cast(PtrToInt, x))
}

// BuildIntToPtr builds an `inttoptr` of v to t.
func BuildIntToPtr(r BuilderRef, v ValueRef, t TypeRef, name CString) ValueRef {
	x, to := v.operand(), t.live()
	return r.live().emit(ir.NewIntToPtr(x, to), goString(name), cast(IntToPtr, x))
}

// BuildSExt builds a `sext` of v to t.
func BuildSExt(r BuilderRef, v ValueRef, t TypeRef, name CString) ValueRef {
	x, to := v.operand(), t.live()
	return r.live().emit(ir.NewSExt(x, to), goString(name), cast(SExt, x))
}

// BuildZExt builds a `zext` of v to t.
func BuildZExt(r BuilderRef, v ValueRef, t TypeRef, name CString) ValueRef {
	x, to := v.operand(), t.live()
	return r.live().emit(ir.NewZExt(x, to), goString(name), cast(ZExt, x))
}

// BuildTrunc builds a `trunc` of v to t.
func BuildTrunc(r BuilderRef, v ValueRef, t TypeRef, name CString) ValueRef {
	x, to := v.operand(), t.live()
	return r.live().emit(ir.NewTrunc(x, to), goString(name), cast(Trunc, x))
}

func cast(op Opcode, x value.Value) inst {
	return inst{op: op, operands: []value.Value{x}}
}

// -----------------------------------------------------------------------------

// BuildGlobalString defines a private, unnamed_addr constant global holding
// str with a terminating NUL, in the module of the builder's insertion block.
// The result is a pointer to the character array.
func BuildGlobalString(r BuilderRef, str, name CString) ValueRef {
	b := r.live()
	m := b.cursor().fn.mod

	n := goString(name)
	if n == "" {
		n = ".str"
	}

	g := m.m.NewGlobalDef(uniqueName(m.names, n), constant.NewCharArray(append([]byte(goString(str)), 0)))
	g.Linkage = enum.LinkagePrivate
	g.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	g.Immutable = true
	allocated()

	return ValueRef{v: g, c: m.c}
}

// BuildGlobalStringPtr is BuildGlobalString but returns an `i8*` to the first
// character instead of a pointer to the array.
func BuildGlobalStringPtr(r BuilderRef, str, name CString) ValueRef {
	g := BuildGlobalString(r, str, name)
	gv := g.v.(*ir.Global)

	zero := constant.NewInt(types.I32, 0)
	gep := constant.NewGetElementPtr(gv.ContentType, gv, zero, zero)
	gep.InBounds = true
	allocated()

	return ValueRef{v: gep, c: g.c}
}
