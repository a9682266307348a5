package llc

import (
	"math/big"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// ConstInt returns an integer constant of type t.  The value is truncated to
// the width of t; signExtend only matters for types wider than 64 bits.
func ConstInt(t TypeRef, n uint64, signExtend bool) ValueRef {
	it, ok := t.live().(*types.IntType)
	if !ok {
		panic("llc: integer constant of non-integer type")
	}

	var x *big.Int
	if signExtend && int64(n) < 0 {
		x = big.NewInt(int64(n))
	} else {
		x = new(big.Int).SetUint64(n)
	}

	allocated()
	return ValueRef{v: &constant.Int{Typ: it, X: canonical(x, it.BitSize)}, c: t.c}
}

// canonical truncates x to width bits and returns its two's complement
// signed interpretation.  Booleans stay 0 or 1.
func canonical(x *big.Int, width uint64) *big.Int {
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(width))

	x = new(big.Int).Mod(x, modulus)
	if width == 1 {
		return x
	}

	if x.Bit(int(width-1)) == 1 {
		x.Sub(x, modulus)
	}

	return x
}

// ConstReal returns a floating-point constant of type t.
func ConstReal(t TypeRef, f float64) ValueRef {
	ft, ok := t.live().(*types.FloatType)
	if !ok {
		panic("llc: real constant of non-floating-point type")
	}

	allocated()
	return ValueRef{v: constant.NewFloat(ft, f), c: t.c}
}

// ConstStringInContext returns a character array constant holding the first
// length bytes of str.  Unless dontNullTerminate is set, a NUL is appended.
func ConstStringInContext(r ContextRef, str []byte, length uint32, dontNullTerminate bool) ValueRef {
	c := r.live()
	if int(length) > len(str) {
		panic("llc: string shorter than its length")
	}

	buf := make([]byte, length, length+1)
	copy(buf, str)
	if !dontNullTerminate {
		buf = append(buf, 0)
	}

	allocated()
	return ValueRef{v: constant.NewCharArray(buf), c: c}
}

// ConstNull returns the zero value of type t.
func ConstNull(t TypeRef) ValueRef {
	var v constant.Constant
	switch tt := t.live().(type) {
	case *types.IntType:
		v = constant.NewInt(tt, 0)
	case *types.FloatType:
		v = constant.NewFloat(tt, 0)
	case *types.PointerType:
		v = constant.NewNull(tt)
	default:
		v = constant.NewZeroInitializer(tt)
	}

	allocated()
	return ValueRef{v: v, c: t.c}
}

// -----------------------------------------------------------------------------

// ConstIntGetSExtValue returns an integer constant sign-extended to 64 bits.
func ConstIntGetSExtValue(r ValueRef) int64 {
	ci := asConstInt(r)
	if ci.Typ.BitSize == 1 {
		return -ci.X.Int64()
	}

	return ci.X.Int64()
}

// ConstIntGetZExtValue returns an integer constant zero-extended to 64 bits.
func ConstIntGetZExtValue(r ValueRef) uint64 {
	ci := asConstInt(r)
	if ci.X.Sign() >= 0 {
		return ci.X.Uint64()
	}

	modulus := new(big.Int).Lsh(big.NewInt(1), uint(ci.Typ.BitSize))
	return new(big.Int).Add(ci.X, modulus).Uint64()
}

func asConstInt(r ValueRef) *constant.Int {
	r.c.check()

	ci, ok := r.v.(*constant.Int)
	if !ok {
		panic("llc: not an integer constant")
	}

	return ci
}

// ConstRealGetDouble returns the value of a floating-point constant.
func ConstRealGetDouble(r ValueRef) float64 {
	r.c.check()

	cf, ok := r.v.(*constant.Float)
	if !ok {
		panic("llc: not a floating-point constant")
	}

	f, _ := cf.X.Float64()
	return f
}

// GetAsString returns the bytes of a character array constant, including any
// terminating NUL.
func GetAsString(r ValueRef) []byte {
	r.c.check()

	ca, ok := r.v.(*constant.CharArray)
	if !ok {
		panic("llc: not a character array constant")
	}

	return append([]byte(nil), ca.X...)
}

// IsConstantString reports whether a value is a character array constant.
func IsConstantString(r ValueRef) bool {
	r.c.check()

	_, ok := r.v.(*constant.CharArray)
	return ok
}

// IsNull reports whether a value is the zero value of its type.
func IsNull(r ValueRef) bool {
	r.c.check()

	switch v := r.v.(type) {
	case *constant.Int:
		return v.X.Sign() == 0
	case *constant.Float:
		return v.X.Sign() == 0
	case *constant.Null, *constant.ZeroInitializer:
		return true
	default:
		return false
	}
}
