package llvm

import (
	"irkit/llc"
)

// TypeKind identifies a specific kind of type.
type TypeKind llc.TypeKind

// Enumeration of different possible type kinds.
const (
	VoidTypeKind     TypeKind = TypeKind(llc.VoidTypeKind)
	FloatTypeKind    TypeKind = TypeKind(llc.FloatTypeKind)
	DoubleTypeKind   TypeKind = TypeKind(llc.DoubleTypeKind)
	LabelTypeKind    TypeKind = TypeKind(llc.LabelTypeKind)
	IntegerTypeKind  TypeKind = TypeKind(llc.IntegerTypeKind)
	FunctionTypeKind TypeKind = TypeKind(llc.FunctionTypeKind)
	StructTypeKind   TypeKind = TypeKind(llc.StructTypeKind)
	ArrayTypeKind    TypeKind = TypeKind(llc.ArrayTypeKind)
	PointerTypeKind  TypeKind = TypeKind(llc.PointerTypeKind)
	OtherTypeKind    TypeKind = TypeKind(llc.OtherTypeKind)
)

// Type is an interface used to represent all types.
type Type interface {
	// ptr returns the native reference to the type.
	ptr() llc.TypeRef

	// Ref returns the native reference to the type.
	Ref() llc.TypeRef

	// Kind returns the type's type kind.
	Kind() TypeKind

	// String returns the textual form of the type.
	String() string
}

// typeBase is the base struct used to build types.
type typeBase struct {
	c llc.TypeRef
}

func (tb typeBase) ptr() llc.TypeRef {
	return tb.c
}

func (tb typeBase) Ref() llc.TypeRef {
	return tb.c
}

func (tb typeBase) Kind() TypeKind {
	return TypeKind(llc.GetTypeKind(tb.c))
}

func (tb typeBase) String() string {
	return llc.PrintTypeToString(tb.c)
}

// -----------------------------------------------------------------------------

// IntegerType represents an integer type.
type IntegerType struct {
	typeBase
}

// BitWidth returns the bit width of the integer type.
func (it IntegerType) BitWidth() uint {
	return uint(llc.GetIntTypeWidth(it.c))
}

// IntType returns the integer type of the given bit width.
func (c *Context) IntType(bits uint) (it IntegerType) {
	it.c = llc.IntTypeInContext(c.c, count(int(bits)))
	return
}

// Int1Type returns the `i1` type in the context.
func (c *Context) Int1Type() IntegerType {
	return c.IntType(1)
}

// Int8Type returns the `i8` type in the context.
func (c *Context) Int8Type() IntegerType {
	return c.IntType(8)
}

// Int16Type returns the `i16` type in the context.
func (c *Context) Int16Type() IntegerType {
	return c.IntType(16)
}

// Int32Type returns the `i32` type in the context.
func (c *Context) Int32Type() IntegerType {
	return c.IntType(32)
}

// Int64Type returns the `i64` type in the context.
func (c *Context) Int64Type() IntegerType {
	return c.IntType(64)
}

// -----------------------------------------------------------------------------

// PointerType represents a pointer type.
type PointerType struct {
	typeBase
}

// NewPointerType returns the pointer type to elemType.
func NewPointerType(elemType Type) (pt PointerType) {
	pt.c = llc.PointerType(elemType.ptr())
	return
}

// ElemType returns the element type of the pointer.
func (pt PointerType) ElemType() Type {
	return wrapType(llc.GetElementType(pt.c))
}

// -----------------------------------------------------------------------------

// FunctionType represents a function type.
type FunctionType struct {
	typeBase
}

// NewFunctionType returns a new function type with no variadic argument.
func NewFunctionType(returnType Type, paramTypes ...Type) (ft FunctionType) {
	ft.c = llc.FunctionType(returnType.ptr(), typeRefs(paramTypes), count(len(paramTypes)), false)
	return
}

// NewVarArgFunctionType returns a new variadic function type.
func NewVarArgFunctionType(returnType Type, paramTypes ...Type) (ft FunctionType) {
	ft.c = llc.FunctionType(returnType.ptr(), typeRefs(paramTypes), count(len(paramTypes)), true)
	return
}

// IsVarArg returns whether or not the function is variadic.
func (ft FunctionType) IsVarArg() bool {
	return llc.IsFunctionVarArg(ft.c)
}

// ReturnType returns the return type of the function.
func (ft FunctionType) ReturnType() Type {
	return wrapType(llc.GetReturnType(ft.c))
}

// NumParams returns the number of parameters of the function.
func (ft FunctionType) NumParams() uint {
	return uint(llc.CountParamTypes(ft.c))
}

// Params returns the parameter types of the function.
func (ft FunctionType) Params() []Type {
	numParams := ft.NumParams()

	if numParams == 0 {
		return nil
	}

	paramArr := make([]llc.TypeRef, numParams)
	llc.GetParamTypes(ft.c, paramArr)

	params := make([]Type, numParams)
	for i, paramRef := range paramArr {
		params[i] = wrapType(paramRef)
	}

	return params
}

// -----------------------------------------------------------------------------

// StructType represents a struct type.
type StructType struct {
	typeBase
}

// StructType returns a literal struct type with the given element types.
func (c *Context) StructType(elemTypes []Type, packed bool) (st StructType) {
	st.c = llc.StructTypeInContext(c.c, typeRefs(elemTypes), count(len(elemTypes)), packed)
	return
}

// NamedStructType creates a new opaque struct type identified by name.  Its
// body is set with SetBody.
func (c *Context) NamedStructType(name string) (st StructType, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	st.c = llc.StructCreateNamed(c.c, cname)
	return
}

// Name returns the name of the struct, empty for a literal struct.
func (st StructType) Name() string {
	return llc.GetStructName(st.c)
}

// SetBody sets the element types of a named struct.
func (st StructType) SetBody(elemTypes []Type, packed bool) {
	llc.StructSetBody(st.c, typeRefs(elemTypes), count(len(elemTypes)), packed)
}

// NumElements returns the number of element types of the struct.
func (st StructType) NumElements() int {
	return int(llc.CountStructElementTypes(st.c))
}

// ElementTypes returns the element types of the struct.
func (st StructType) ElementTypes() []Type {
	n := llc.CountStructElementTypes(st.c)
	if n == 0 {
		return nil
	}

	elems := make([]Type, n)
	for i := range elems {
		elems[i] = wrapType(llc.StructGetTypeAtIndex(st.c, uint32(i)))
	}

	return elems
}

// IsPacked returns whether the struct is packed.
func (st StructType) IsPacked() bool {
	return llc.IsPackedStruct(st.c)
}

// IsOpaque returns whether the struct has no body yet.
func (st StructType) IsOpaque() bool {
	return llc.IsOpaqueStruct(st.c)
}

// -----------------------------------------------------------------------------

// FloatType returns the `float` type.
func (c *Context) FloatType() Type {
	return typeBase{c: llc.FloatTypeInContext(c.c)}
}

// DoubleType returns the `double` type.
func (c *Context) DoubleType() Type {
	return typeBase{c: llc.DoubleTypeInContext(c.c)}
}

// VoidType returns the `void` type.
func (c *Context) VoidType() Type {
	return typeBase{c: llc.VoidTypeInContext(c.c)}
}

// -----------------------------------------------------------------------------

// wrapType wraps a native type reference in the most specific handle for its
// kind.
func wrapType(r llc.TypeRef) Type {
	tb := typeBase{c: r}

	switch tb.Kind() {
	case IntegerTypeKind:
		return IntegerType{tb}
	case PointerTypeKind:
		return PointerType{tb}
	case FunctionTypeKind:
		return FunctionType{tb}
	case StructTypeKind:
		return StructType{tb}
	default:
		return tb
	}
}

func typeRefs(ts []Type) []llc.TypeRef {
	refs := make([]llc.TypeRef, len(ts))
	for i, t := range ts {
		refs[i] = t.ptr()
	}

	return refs
}
