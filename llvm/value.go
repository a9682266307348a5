package llvm

import (
	"irkit/llc"
)

// Value is an interface used to represent all values.  Values are non-owning
// handles: two handles are == when they reference the same native value.
type Value interface {
	// ptr returns the native reference to the value.
	ptr() llc.ValueRef

	// Ref returns the native reference to the value.
	Ref() llc.ValueRef

	// Type returns the type of the value.
	Type() Type

	// Name returns the name of the value.
	Name() string

	// IsConstant returns whether the value is constant.
	IsConstant() bool
}

// valueBase is the base type for all values.
type valueBase struct {
	c llc.ValueRef
}

func (v valueBase) ptr() llc.ValueRef {
	return v.c
}

func (v valueBase) Ref() llc.ValueRef {
	return v.c
}

func (v valueBase) Type() Type {
	return wrapType(llc.TypeOf(v.c))
}

func (v valueBase) Name() string {
	return llc.GetValueName(v.c)
}

func (v valueBase) IsConstant() bool {
	return llc.IsConstant(v.c)
}

// SameValue reports whether two value handles reference the same native
// value, regardless of the handle types used to view it.
func SameValue(a, b Value) bool {
	return a.ptr() == b.ptr()
}

// -----------------------------------------------------------------------------

// Constant represents a constant value.
type Constant struct {
	valueBase
}

// ConstNull creates a new constant null value of type typ.
func ConstNull(typ Type) (c Constant) {
	c.c = llc.ConstNull(typ.ptr())
	return
}

// ConstInt creates a new integer constant of type intType, with value n, and
// signedness signed.
func ConstInt(intType IntegerType, n uint64, signed bool) (c Constant) {
	c.c = llc.ConstInt(intType.c, n, signed)
	return
}

// ConstReal creates a new real constant of type floatType with value n.
func ConstReal(floatType Type, n float64) (c Constant) {
	c.c = llc.ConstReal(floatType.ptr(), n)
	return
}

// IsNull returns whether or not the given constant is null.
func (c Constant) IsNull() bool {
	return llc.IsNull(c.c)
}

// SExtValue returns the value of an integer constant sign-extended to 64
// bits.
func (c Constant) SExtValue() int64 {
	return llc.ConstIntGetSExtValue(c.c)
}

// ZExtValue returns the value of an integer constant zero-extended to 64
// bits.
func (c Constant) ZExtValue() uint64 {
	return llc.ConstIntGetZExtValue(c.c)
}

// Float returns the value of a floating-point constant.
func (c Constant) Float() float64 {
	return llc.ConstRealGetDouble(c.c)
}

// Bytes returns the contents of a string constant, including its
// terminating NUL.
func (c Constant) Bytes() []byte {
	return llc.GetAsString(c.c)
}

// IsString returns whether the constant is a character array.
func (c Constant) IsString() bool {
	return llc.IsConstantString(c.c)
}

// -----------------------------------------------------------------------------

// FuncParam represents a function parameter.
type FuncParam struct {
	valueBase
}
