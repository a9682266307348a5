package cmd

import (
	"sort"

	"irkit/llvm"
)

// sample is a program that can be built into a module.  Samples define their
// functions in m using a builder created from c.
type sample struct {
	Description string
	Build       func(c *llvm.Context, m *llvm.Module) error
}

// samples lists all the programs a profile can build.
var samples = map[string]sample{
	"add": {
		Description: "i32 add(i32, i32) returning the sum of its arguments",
		Build:       buildAdd,
	},
	"hello": {
		Description: "i32 main() printing a greeting through puts",
		Build:       buildHello,
	},
	"max": {
		Description: "i32 max(i32, i32) choosing the larger argument with a branch",
		Build:       buildMax,
	},
	"pair": {
		Description: "i64 pair_sum(i32, i32) round-tripping a named struct through memory",
		Build:       buildPair,
	},
	"bits": {
		Description: "i8 mix(i32, i32) combining every arithmetic and bitwise operator",
		Build:       buildBits,
	},
}

// sampleNames returns the names of all samples in sorted order.
func sampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// defineFunc adds a function to m and returns it along with a builder
// positioned at its entry block.  The parameters are named in order.
func defineFunc(c *llvm.Context, m *llvm.Module, name string, ft llvm.FunctionType, params ...string) (llvm.Function, *llvm.Builder, error) {
	fn, err := m.AddFunction(name, ft)
	if err != nil {
		return fn, nil, err
	}

	for i, pname := range params {
		if err := fn.SetParamName(i, pname); err != nil {
			return fn, nil, err
		}
	}

	entry, err := c.AppendBasicBlock(fn, "entry")
	if err != nil {
		return fn, nil, err
	}

	b := c.NewBuilder()
	b.PositionAtEnd(entry)
	return fn, b, nil
}

func buildAdd(c *llvm.Context, m *llvm.Module) error {
	i32 := c.Int32Type()

	fn, b, err := defineFunc(c, m, "add", llvm.NewFunctionType(i32, i32, i32), "a", "b")
	if err != nil {
		return err
	}
	defer b.Dispose()

	sum, err := b.Add(fn.Param(0), fn.Param(1), "sum")
	if err != nil {
		return err
	}

	b.Ret(sum)
	return nil
}

func buildHello(c *llvm.Context, m *llvm.Module) error {
	i32 := c.Int32Type()

	puts, err := m.AddFunction("puts", llvm.NewFunctionType(i32, llvm.TypeFor[llvm.Ptr[llvm.I8]](c)))
	if err != nil {
		return err
	}

	_, b, err := defineFunc(c, m, "main", llvm.NewFunctionType(i32))
	if err != nil {
		return err
	}
	defer b.Dispose()

	msg, err := b.GlobalStringPtr("hello, world", "greeting")
	if err != nil {
		return err
	}

	if _, err := b.Call(puts, []llvm.Value{msg}, ""); err != nil {
		return err
	}

	b.Ret(c.Const(llvm.I32(0)))
	return nil
}

func buildMax(c *llvm.Context, m *llvm.Module) error {
	i32 := c.Int32Type()

	fn, b, err := defineFunc(c, m, "max", llvm.NewFunctionType(i32, i32, i32), "a", "b")
	if err != nil {
		return err
	}
	defer b.Dispose()

	a, bv := fn.Param(0), fn.Param(1)

	isGreater, err := b.ICmp(llvm.IntSGT, a, bv, "gt")
	if err != nil {
		return err
	}

	takeA, err := c.AppendBasicBlock(fn, "take_a")
	if err != nil {
		return err
	}

	takeB, err := c.AppendBasicBlock(fn, "take_b")
	if err != nil {
		return err
	}

	b.CondBr(isGreater, takeA, takeB)

	b.PositionAtEnd(takeA)
	b.Ret(a)

	b.PositionAtEnd(takeB)
	b.Ret(bv)
	return nil
}

func buildPair(c *llvm.Context, m *llvm.Module) error {
	i32, i64 := c.Int32Type(), c.Int64Type()

	pair, err := c.NamedStructType("pair")
	if err != nil {
		return err
	}
	pair.SetBody([]llvm.Type{i32, i32}, false)

	fn, b, err := defineFunc(c, m, "pair_sum", llvm.NewFunctionType(i64, i32, i32), "a", "b")
	if err != nil {
		return err
	}
	defer b.Dispose()

	slot, err := b.Alloca(pair, "slot")
	if err != nil {
		return err
	}

	for i := 0; i < 2; i++ {
		field, err := b.InBoundsGEP(slot, []llvm.Value{c.Const(llvm.I32(0)), c.Const(llvm.I32(int32(i)))}, "field")
		if err != nil {
			return err
		}

		b.Store(fn.Param(i), field)
	}

	loaded, err := b.Load(slot, "loaded")
	if err != nil {
		return err
	}

	// Swap the fields through insertvalue so both aggregate operations appear.
	first, err := b.ExtractValue(loaded, 0, "first")
	if err != nil {
		return err
	}

	second, err := b.ExtractValue(loaded, 1, "second")
	if err != nil {
		return err
	}

	swapped, err := b.InsertValue(loaded, second, 0, "swapped")
	if err != nil {
		return err
	}

	swapped, err = b.InsertValue(swapped, first, 1, "swapped")
	if err != nil {
		return err
	}

	lo, err := b.ExtractValue(swapped, 0, "lo")
	if err != nil {
		return err
	}

	hi, err := b.ExtractValue(swapped, 1, "hi")
	if err != nil {
		return err
	}

	loWide, err := b.SExt(lo, i64, "lo_wide")
	if err != nil {
		return err
	}

	hiWide, err := b.SExt(hi, i64, "hi_wide")
	if err != nil {
		return err
	}

	sum, err := b.Add(loWide, hiWide, "sum")
	if err != nil {
		return err
	}

	// Round-trip the slot address through an integer.
	raw, err := b.BitCast(slot, llvm.TypeFor[llvm.Ptr[llvm.U8]](c), "raw")
	if err != nil {
		return err
	}

	addr, err := b.PtrToInt(raw, i64, "addr")
	if err != nil {
		return err
	}

	if _, err := b.IntToPtr(addr, llvm.NewPointerType(pair), "again"); err != nil {
		return err
	}

	b.Ret(sum)
	return nil
}

func buildBits(c *llvm.Context, m *llvm.Module) error {
	i8, i32 := c.Int8Type(), c.Int32Type()

	fn, b, err := defineFunc(c, m, "mix", llvm.NewFunctionType(i8, i32, i32), "x", "y")
	if err != nil {
		return err
	}
	defer b.Dispose()

	type binop func(lhs, rhs llvm.Value, name string) (llvm.Instruction, error)

	acc := llvm.Value(fn.Param(0))
	y := fn.Param(1)
	for _, step := range []struct {
		op   binop
		name string
	}{
		{b.Sub, "diff"},
		{b.Mul, "prod"},
		{b.SDiv, "quot"},
		{b.And, "masked"},
		{b.Or, "merged"},
		{b.Xor, "flipped"},
	} {
		in, err := step.op(acc, y, step.name)
		if err != nil {
			return err
		}

		acc = in
	}

	neg, err := b.Neg(acc, "neg")
	if err != nil {
		return err
	}

	not, err := b.Not(neg, "not")
	if err != nil {
		return err
	}

	low, err := b.Trunc(not, c.Int16Type(), "low")
	if err != nil {
		return err
	}

	wide, err := b.ZExt(low, i32, "wide")
	if err != nil {
		return err
	}

	narrow, err := b.Trunc(wide, i8, "narrow")
	if err != nil {
		return err
	}

	b.Ret(narrow)
	return nil
}
