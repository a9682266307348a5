package llvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irkit/llc"
)

// fixture is a context with one module holding the function `i32 f(i32, i32)`
// and a builder positioned at its entry block.
type fixture struct {
	ctx   *Context
	mod   *Module
	fn    Function
	entry BasicBlock
	b     *Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{ctx: NewContext()}
	t.Cleanup(f.ctx.Dispose)

	var err error
	f.mod, err = f.ctx.NewModule("test")
	require.NoError(t, err)

	i32 := f.ctx.Int32Type()
	f.fn, err = f.mod.AddFunction("f", NewFunctionType(i32, i32, i32))
	require.NoError(t, err)

	f.entry, err = f.ctx.AppendBasicBlock(f.fn, "entry")
	require.NoError(t, err)

	f.b = f.ctx.NewBuilder()
	f.b.PositionAtEnd(f.entry)
	return f
}

func (f *fixture) i32(n int32) Constant {
	return f.ctx.Const(I32(n))
}

func TestBuilderCursor(t *testing.T) {
	f := newFixture(t)

	next, err := f.ctx.AppendBasicBlock(f.fn, "next")
	require.NoError(t, err)

	bb, ok := f.b.InsertBlock()
	require.True(t, ok)
	assert.Equal(t, f.entry, bb)

	f.b.Br(next)
	f.b.PositionAtEnd(next)
	f.b.RetVoid()

	bb, ok = f.b.InsertBlock()
	require.True(t, ok)
	assert.Equal(t, "next", bb.Name())
	assert.Equal(t, 1, f.entry.NumInstructions())
	assert.Equal(t, 1, next.NumInstructions())

	f.b.ClearInsertionPosition()
	_, ok = f.b.InsertBlock()
	assert.False(t, ok)
}

func TestAddAndReturn(t *testing.T) {
	f := newFixture(t)

	sum, err := f.b.Add(f.fn.Param(0), f.fn.Param(1), "sum")
	require.NoError(t, err)
	ret := f.b.Ret(sum)

	require.Equal(t, 1, f.fn.NumBlocks())
	require.Equal(t, 2, f.entry.NumInstructions())

	term, ok := f.entry.Terminator()
	require.True(t, ok)
	assert.Equal(t, ret, term)
	assert.Equal(t, RetOpCode, term.OpCode())
	assert.True(t, SameValue(sum, term.Operand(0)))

	first, ok := f.entry.First()
	require.True(t, ok)
	assert.Equal(t, AddOpCode, first.OpCode())
	assert.Equal(t, "sum", first.Name())
	assert.Equal(t, f.entry, first.Parent())

	var ops []OpCode
	for it := f.entry.Instructions(); it.Next(); {
		ops = append(ops, it.Item().OpCode())
	}
	assert.Equal(t, []OpCode{AddOpCode, RetOpCode}, ops)

	require.NoError(t, f.mod.Verify())
	assert.Contains(t, f.mod.String(), "%sum = add i32 %0, %1")
}

func TestArithmeticFamily(t *testing.T) {
	f := newFixture(t)
	x, y := f.fn.Param(0), f.fn.Param(1)

	cases := []struct {
		build func(lhs, rhs Value, name string) (Instruction, error)
		op    OpCode
	}{
		{f.b.Add, AddOpCode},
		{f.b.Sub, SubOpCode},
		{f.b.Mul, MulOpCode},
		{f.b.SDiv, SDivOpCode},
		{f.b.And, AndOpCode},
		{f.b.Or, OrOpCode},
		{f.b.Xor, XorOpCode},
	}

	for _, tc := range cases {
		in, err := tc.build(x, y, "v")
		require.NoError(t, err)
		assert.Equal(t, tc.op, in.OpCode())
		assert.Equal(t, 2, in.NumOperands())
		assert.True(t, SameValue(x, in.Operand(0)))
	}

	neg, err := f.b.Neg(x, "neg")
	require.NoError(t, err)
	assert.Equal(t, SubOpCode, neg.OpCode())

	not, err := f.b.Not(x, "not")
	require.NoError(t, err)
	assert.Equal(t, XorOpCode, not.OpCode())

	cmp, err := f.b.ICmp(IntSLT, x, y, "lt")
	require.NoError(t, err)
	assert.Equal(t, IntSLT, cmp.Predicate())
	assert.Equal(t, uint(1), cmp.Type().(IntegerType).BitWidth())
}

func TestBranches(t *testing.T) {
	f := newFixture(t)

	then, err := f.ctx.AppendBasicBlock(f.fn, "then")
	require.NoError(t, err)
	els, err := f.ctx.AppendBasicBlock(f.fn, "else")
	require.NoError(t, err)

	cmp, err := f.b.ICmp(IntEQ, f.fn.Param(0), f.i32(0), "zero")
	require.NoError(t, err)

	br := f.b.CondBr(cmp, then, els)
	assert.True(t, br.IsTerminator())
	require.Equal(t, 2, br.NumSuccessors())
	assert.Equal(t, then, br.Successor(0))
	assert.Equal(t, els, br.Successor(1))
	assert.Panics(t, func() { br.Successor(2) })

	f.b.PositionAtEnd(then)
	f.b.Ret(f.i32(1))
	f.b.PositionAtEnd(els)
	un := f.b.Unreachable()
	assert.Equal(t, 0, un.NumSuccessors())

	var names []string
	for it := f.fn.Blocks(); it.Next(); {
		names = append(names, it.Item().Name())
	}
	assert.Equal(t, []string{"entry", "then", "else"}, names)

	last, ok := f.fn.LastBlock()
	require.True(t, ok)
	assert.Equal(t, els, last)

	require.NoError(t, f.mod.Verify())
}

func TestMemoryAndAggregates(t *testing.T) {
	f := newFixture(t)
	i32 := f.ctx.Int32Type()

	pair := f.ctx.StructType([]Type{i32, i32}, false)
	slot, err := f.b.Alloca(pair, "slot")
	require.NoError(t, err)
	assert.Equal(t, pair.Ref(), slot.AllocatedType().Ref())
	assert.Equal(t, PointerTypeKind, slot.Type().Kind())

	field, err := f.b.InBoundsGEP(slot, []Value{f.i32(0), f.i32(1)}, "field")
	require.NoError(t, err)
	assert.True(t, field.IsInBounds())

	store := f.b.Store(f.fn.Param(0), field)
	assert.Equal(t, StoreOpCode, store.OpCode())

	loaded, err := f.b.Load(field, "loaded")
	require.NoError(t, err)
	assert.Equal(t, i32.Ref(), loaded.Type().Ref())

	whole, err := f.b.Load(slot, "whole")
	require.NoError(t, err)

	updated, err := f.b.InsertValue(whole, loaded, 0, "updated")
	require.NoError(t, err)
	assert.Equal(t, InsertValueOpCode, updated.OpCode())

	out, err := f.b.ExtractValue(updated, 1, "out")
	require.NoError(t, err)
	assert.Equal(t, i32.Ref(), out.Type().Ref())

	raw, err := f.b.GEP(slot, []Value{f.i32(0)}, "raw")
	require.NoError(t, err)
	assert.False(t, raw.IsInBounds())

	f.b.Ret(out)
	require.NoError(t, f.mod.Verify())
}

func TestCasts(t *testing.T) {
	f := newFixture(t)
	x := f.fn.Param(0)

	i8, i64 := f.ctx.Int8Type(), f.ctx.Int64Type()
	i8p := NewPointerType(i8)

	cases := []struct {
		name string
		cast func() (Instruction, error)
		op   OpCode
		to   Type
	}{
		{"trunc", func() (Instruction, error) { return f.b.Trunc(x, i8, "t") }, TruncOpCode, i8},
		{"sext", func() (Instruction, error) { return f.b.SExt(x, i64, "s") }, SExtOpCode, i64},
		{"zext", func() (Instruction, error) { return f.b.ZExt(x, i64, "z") }, ZExtOpCode, i64},
		{"inttoptr", func() (Instruction, error) { return f.b.IntToPtr(x, i8p, "p") }, IntToPtrOpCode, i8p},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := tc.cast()
			require.NoError(t, err)
			assert.Equal(t, tc.op, in.OpCode())
			assert.Equal(t, tc.to.Ref(), in.Type().Ref())
		})
	}

	p, err := f.b.IntToPtr(x, i8p, "p")
	require.NoError(t, err)

	bc, err := f.b.BitCast(p, NewPointerType(f.ctx.Int32Type()), "bc")
	require.NoError(t, err)
	assert.Equal(t, BitCastOpCode, bc.OpCode())

	pi, err := f.b.PtrToInt(bc, i64, "pi")
	require.NoError(t, err)
	assert.Equal(t, PtrToIntOpCode, pi.OpCode())
}

func TestCalls(t *testing.T) {
	f := newFixture(t)

	sink, err := f.mod.AddFunction("sink", NewFunctionType(f.ctx.VoidType(), f.ctx.Int32Type()))
	require.NoError(t, err)

	call, err := f.b.Call(sink, []Value{f.fn.Param(0)}, "ignored")
	require.NoError(t, err)
	assert.Equal(t, CallOpCode, call.OpCode())
	assert.Equal(t, "", call.Name())
	assert.Equal(t, 1, call.NumArgs())
	assert.True(t, SameValue(sink, call.Callee()))

	rec, err := f.b.Call(f.fn, []Value{f.i32(1), f.i32(2)}, "rec")
	require.NoError(t, err)
	assert.Equal(t, "rec", rec.Name())
	assert.Equal(t, 2, rec.NumArgs())

	f.b.Ret(rec)
	require.NoError(t, f.mod.Verify())
}

func TestGlobalStrings(t *testing.T) {
	f := newFixture(t)

	gv, err := f.b.GlobalString("hello", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "greeting", gv.Name())
	assert.Equal(t, PointerTypeKind, gv.Type().Kind())

	p, err := f.b.GlobalStringPtr("hello", "")
	require.NoError(t, err)
	assert.True(t, p.IsConstant())

	pt := p.Type().(PointerType)
	assert.Equal(t, f.ctx.Int8Type().Ref(), pt.ElemType().Ref())

	_, err = f.b.GlobalString("a\x00b", "")
	assert.ErrorIs(t, err, ErrInvalidText)
}

func TestInvalidNamesEmitNothing(t *testing.T) {
	f := newFixture(t)
	x := f.fn.Param(0)
	before := llc.ReadStats()

	_, err := f.b.Add(x, x, "a\x00")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.b.Alloca(f.ctx.Int32Type(), "\x00")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.b.Call(f.fn, []Value{x, x}, "c\x00")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.b.GlobalStringPtr("ok", "g\x00")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.ctx.AppendBasicBlock(f.fn, "bb\x00")
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.Equal(t, 0, f.entry.NumInstructions())
	assert.Equal(t, 1, f.fn.NumBlocks())
	assert.Equal(t, before, llc.ReadStats())
}

func TestParamNames(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.fn.SetParamName(0, "lhs"))
	assert.Equal(t, "lhs", f.fn.Param(0).Name())
	assert.ErrorIs(t, f.fn.SetParamName(1, "r\x00"), ErrInvalidName)
	assert.Panics(t, func() { f.fn.Param(2) })

	sig := f.fn.Signature()
	assert.Equal(t, uint(2), sig.NumParams())
}
