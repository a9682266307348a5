package llc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFunc creates a module with one function of type i32(i32, i32) and an
// entry block, and a builder positioned at that block.
func newFunc(t *testing.T) (ContextRef, ModuleRef, ValueRef, BasicBlockRef, BuilderRef) {
	t.Helper()

	c := ContextCreate()
	m := ModuleCreateWithNameInContext(NewCString("test"), c)

	i32 := IntTypeInContext(c, 32)
	ft := FunctionType(i32, []TypeRef{i32, i32}, 2, false)
	fn := AddFunction(m, NewCString("f"), ft)
	entry := AppendBasicBlockInContext(c, fn, NewCString("entry"))

	b := CreateBuilderInContext(c)
	PositionBuilderAtEnd(b, entry)

	t.Cleanup(func() {
		DisposeBuilder(b)
		DisposeModule(m)
		ContextDispose(c)
	})

	return c, m, fn, entry, b
}

func TestLifecycleCounters(t *testing.T) {
	before := ReadStats()

	c := ContextCreate()
	b := CreateBuilderInContext(c)
	m := ModuleCreateWithNameInContext(NewCString("m"), c)
	DisposeBuilder(b)
	DisposeModule(m)
	ContextDispose(c)

	after := ReadStats()
	assert.Equal(t, int64(1), after.ContextsCreated-before.ContextsCreated)
	assert.Equal(t, int64(1), after.ContextsDisposed-before.ContextsDisposed)
	assert.Equal(t, int64(1), after.BuildersCreated-before.BuildersCreated)
	assert.Equal(t, int64(1), after.BuildersDisposed-before.BuildersDisposed)
	assert.Equal(t, int64(1), after.ModulesCreated-before.ModulesCreated)
	assert.Equal(t, int64(1), after.ModulesDisposed-before.ModulesDisposed)
	assert.Equal(t, int64(3), after.Allocations-before.Allocations)
}

func TestMisuseAborts(t *testing.T) {
	t.Run("double context dispose", func(t *testing.T) {
		c := ContextCreate()
		ContextDispose(c)
		assert.Panics(t, func() { ContextDispose(c) })
	})

	t.Run("double builder dispose", func(t *testing.T) {
		c := ContextCreate()
		defer ContextDispose(c)

		b := CreateBuilderInContext(c)
		DisposeBuilder(b)
		assert.Panics(t, func() { DisposeBuilder(b) })
	})

	t.Run("type after context dispose", func(t *testing.T) {
		c := ContextCreate()
		i32 := IntTypeInContext(c, 32)
		ContextDispose(c)

		assert.Panics(t, func() { IntTypeInContext(c, 8) })
		assert.Panics(t, func() { GetIntTypeWidth(i32) })
	})

	t.Run("builder outlives context", func(t *testing.T) {
		c := ContextCreate()
		b := CreateBuilderInContext(c)
		ContextDispose(c)

		assert.Panics(t, func() { BuildRetVoid(b) })
		assert.NotPanics(t, func() { DisposeBuilder(b) })
	})

	t.Run("emit without insertion block", func(t *testing.T) {
		c := ContextCreate()
		defer ContextDispose(c)

		b := CreateBuilderInContext(c)
		defer DisposeBuilder(b)

		assert.Panics(t, func() { BuildUnreachable(b) })
	})

	t.Run("unterminated name", func(t *testing.T) {
		c := ContextCreate()
		defer ContextDispose(c)

		assert.Panics(t, func() { ModuleCreateWithNameInContext(CString("m"), c) })
	})
}

func TestCStringStopsAtNUL(t *testing.T) {
	c := ContextCreate()
	defer ContextDispose(c)

	m := ModuleCreateWithNameInContext(CString("abc\x00def\x00"), c)
	defer DisposeModule(m)

	assert.Equal(t, "abc", GetModuleIdentifier(m))
}

func TestTypesAreUniqued(t *testing.T) {
	c := ContextCreate()
	defer ContextDispose(c)

	assert.Equal(t, IntTypeInContext(c, 32), IntTypeInContext(c, 32))
	assert.Equal(t, IntTypeInContext(c, 17), IntTypeInContext(c, 17))

	i8 := IntTypeInContext(c, 8)
	assert.True(t, PointerType(i8) == PointerType(i8))
	assert.Equal(t, i8, GetElementType(PointerType(i8)))
}

func TestNamedStruct(t *testing.T) {
	c := ContextCreate()
	defer ContextDispose(c)

	st := StructCreateNamed(c, NewCString("pair"))
	assert.True(t, IsOpaqueStruct(st))
	assert.Equal(t, "pair", GetStructName(st))

	other := StructCreateNamed(c, NewCString("pair"))
	assert.Equal(t, "pair1", GetStructName(other))

	i64 := IntTypeInContext(c, 64)
	StructSetBody(st, []TypeRef{i64, i64}, 2, true)
	assert.False(t, IsOpaqueStruct(st))
	assert.True(t, IsPackedStruct(st))
	assert.Equal(t, uint32(2), CountStructElementTypes(st))
	assert.Equal(t, i64, StructGetTypeAtIndex(st, 1))
}

func TestConstInt(t *testing.T) {
	c := ContextCreate()
	defer ContextDispose(c)

	cases := []struct {
		name string
		bits uint32
		n    uint64
		sext int64
		zext uint64
	}{
		{"positive", 32, 5, 5, 5},
		{"negative", 8, 0xff, -1, 0xff},
		{"truncated", 8, 0x1ff, -1, 0xff},
		{"bool", 1, 1, -1, 1},
		{"wide", 64, 1 << 63, -1 << 63, 1 << 63},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := ConstInt(IntTypeInContext(c, tc.bits), tc.n, false)

			assert.True(t, IsConstant(v))
			assert.Equal(t, tc.sext, ConstIntGetSExtValue(v))
			assert.Equal(t, tc.zext, ConstIntGetZExtValue(v))
		})
	}
}

func TestConstString(t *testing.T) {
	c := ContextCreate()
	defer ContextDispose(c)

	s := ConstStringInContext(c, []byte("hello, world"), 5, false)
	assert.Equal(t, []byte("hello\x00"), GetAsString(s))

	raw := ConstStringInContext(c, []byte("hello"), 5, true)
	assert.Equal(t, []byte("hello"), GetAsString(raw))
	assert.Equal(t, ArrayTypeKind, GetTypeKind(TypeOf(raw)))
}

func TestBuilderEmission(t *testing.T) {
	c, m, fn, entry, b := newFunc(t)

	sum := BuildAdd(b, GetParam(fn, 0), GetParam(fn, 1), NewCString("sum"))
	ret := BuildRet(b, sum)

	assert.Equal(t, uint32(2), CountInstructions(entry))
	assert.Equal(t, sum, GetFirstInstruction(entry))
	assert.Equal(t, ret, GetNextInstruction(sum))
	assert.True(t, GetNextInstruction(ret).IsNil())
	assert.Equal(t, ret, GetBasicBlockTerminator(entry))

	assert.Equal(t, Add, GetInstructionOpcode(sum))
	assert.Equal(t, "sum", GetValueName(sum))
	assert.Equal(t, entry, GetInstructionParent(sum))
	assert.True(t, IsATerminatorInst(ret))
	assert.Equal(t, sum, GetOperand(ret, 0))
	assert.Equal(t, c, GetValueContext(sum))

	require.NoError(t, VerifyModule(m))

	var sb strings.Builder
	_, err := PrintModule(m, &sb)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "; ModuleID = 'test'")
	assert.Contains(t, sb.String(), "@f(")
}

func TestLocalNamesAreUniqued(t *testing.T) {
	_, _, fn, _, b := newFunc(t)

	x := BuildAdd(b, GetParam(fn, 0), GetParam(fn, 1), NewCString("x"))
	y := BuildAdd(b, x, x, NewCString("x"))
	z := BuildAdd(b, y, y, NewCString("x"))

	assert.Equal(t, "x", GetValueName(x))
	assert.Equal(t, "x1", GetValueName(y))
	assert.Equal(t, "x2", GetValueName(z))
}

func TestNegAndNot(t *testing.T) {
	_, _, fn, _, b := newFunc(t)

	neg := BuildNeg(b, GetParam(fn, 0), NewCString("neg"))
	assert.Equal(t, Sub, GetInstructionOpcode(neg))
	assert.True(t, IsNull(GetOperand(neg, 0)))

	not := BuildNot(b, GetParam(fn, 0), NewCString("not"))
	assert.Equal(t, Xor, GetInstructionOpcode(not))
	assert.Equal(t, int64(-1), ConstIntGetSExtValue(GetOperand(not, 1)))
}

func TestVerifyReportsBadBlocks(t *testing.T) {
	c, m, fn, entry, b := newFunc(t)

	BuildRetVoid(b)
	BuildUnreachable(b)
	assert.True(t, GetBasicBlockTerminator(entry).IsNil())
	assert.Equal(t, uint32(2), CountInstructions(entry))

	AppendBasicBlockInContext(c, fn, NewCString("open"))

	err := VerifyModule(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"entry"`)
	assert.Contains(t, err.Error(), `"open"`)

	_, err = PrintModule(m, &strings.Builder{})
	assert.Error(t, err)
}

func TestGlobalString(t *testing.T) {
	_, m, _, _, b := newFunc(t)

	g := BuildGlobalString(b, NewCString("hi"), NewCString(""))
	assert.Equal(t, ".str", GetValueName(g))
	assert.Equal(t, PointerTypeKind, GetTypeKind(TypeOf(g)))

	p := BuildGlobalStringPtr(b, NewCString("hi"), NewCString(""))
	pt := TypeOf(p)
	assert.Equal(t, PointerTypeKind, GetTypeKind(pt))
	assert.Equal(t, uint32(8), GetIntTypeWidth(GetElementType(pt)))

	BuildRet(b, ConstInt(IntTypeInContext(GetModuleContext(m), 32), 0, false))

	var sb strings.Builder
	_, err := PrintModule(m, &sb)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "private unnamed_addr constant")
}

func TestDisposeModuleForgetsInstructions(t *testing.T) {
	c := ContextCreate()
	defer ContextDispose(c)

	m := ModuleCreateWithNameInContext(NewCString("m"), c)
	fn := AddFunction(m, NewCString("f"), FunctionType(VoidTypeInContext(c), nil, 0, false))
	bb := AppendBasicBlockInContext(c, fn, NewCString("entry"))

	b := CreateBuilderInContext(c)
	defer DisposeBuilder(b)

	PositionBuilderAtEnd(b, bb)
	ret := BuildRetVoid(b)
	DisposeModule(m)

	assert.Panics(t, func() { GetInstructionOpcode(ret) })
	assert.Panics(t, func() { BuildRetVoid(b) })
	assert.Panics(t, func() { DisposeModule(m) })
}
