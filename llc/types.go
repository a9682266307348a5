package llc

import (
	"github.com/llir/llvm/ir/types"
)

// TypeKind identifies the kind of a native type.
type TypeKind int

// Enumeration of type kinds.
const (
	VoidTypeKind TypeKind = iota
	FloatTypeKind
	DoubleTypeKind
	LabelTypeKind
	IntegerTypeKind
	FunctionTypeKind
	StructTypeKind
	ArrayTypeKind
	PointerTypeKind
	OtherTypeKind
)

// TypeRef is an opaque reference to a type owned by a context.
type TypeRef struct {
	t types.Type
	c *context
}

// IsNil reports whether the reference points at nothing.
func (r TypeRef) IsNil() bool {
	return r.t == nil
}

func (r TypeRef) live() types.Type {
	if r.t == nil {
		panic("llc: nil type")
	}

	r.c.check()
	return r.t
}

// TypeContext returns the context that owns a type.
func TypeContext(t TypeRef) ContextRef {
	t.live()
	return ContextRef{c: t.c}
}

// PrintTypeToString returns the textual form of a type.
func PrintTypeToString(t TypeRef) string {
	return t.live().String()
}

// -----------------------------------------------------------------------------

// VoidTypeInContext returns the `void` type.
func VoidTypeInContext(r ContextRef) TypeRef {
	return TypeRef{t: types.Void, c: r.live()}
}

// predeclaredInts are shared with the types llir derives on its own, such as
// the element type of a character array.
var predeclaredInts = map[uint64]*types.IntType{
	1:  types.I1,
	8:  types.I8,
	16: types.I16,
	32: types.I32,
	64: types.I64,
}

// IntTypeInContext returns the integer type of the given bit width.
func IntTypeInContext(r ContextRef, bits uint32) TypeRef {
	c := r.live()

	it, ok := c.ints[uint64(bits)]
	if !ok {
		if it, ok = predeclaredInts[uint64(bits)]; !ok {
			it = types.NewInt(uint64(bits))
		}

		c.ints[uint64(bits)] = it
		allocated()
	}

	return TypeRef{t: it, c: c}
}

// FloatTypeInContext returns the `float` type.
func FloatTypeInContext(r ContextRef) TypeRef {
	return TypeRef{t: types.Float, c: r.live()}
}

// DoubleTypeInContext returns the `double` type.
func DoubleTypeInContext(r ContextRef) TypeRef {
	return TypeRef{t: types.Double, c: r.live()}
}

// PointerType returns the pointer type to elem.
func PointerType(elem TypeRef) TypeRef {
	et := elem.live()

	pt, ok := elem.c.pointers[et]
	if !ok {
		pt = types.NewPointer(et)
		elem.c.pointers[et] = pt
		allocated()
	}

	return TypeRef{t: pt, c: elem.c}
}

// FunctionType returns a function type.  Only the first count entries of
// params are read.
func FunctionType(ret TypeRef, params []TypeRef, count uint32, varArg bool) TypeRef {
	rt := ret.live()

	ft := types.NewFunc(rt, unwrapTypes(params, count)...)
	ft.Variadic = varArg
	allocated()

	return TypeRef{t: ft, c: ret.c}
}

// StructTypeInContext returns a literal struct type.  Only the first count
// entries of elems are read.
func StructTypeInContext(r ContextRef, elems []TypeRef, count uint32, packed bool) TypeRef {
	c := r.live()

	st := types.NewStruct(unwrapTypes(elems, count)...)
	st.Packed = packed
	allocated()

	return TypeRef{t: st, c: c}
}

// StructCreateNamed creates an opaque struct type identified by name.  If the
// name is taken in the context, a numeric suffix makes it unique.
func StructCreateNamed(r ContextRef, name CString) TypeRef {
	c := r.live()

	st := &types.StructType{Opaque: true}
	st.SetName(uniqueName(c.structName, goString(name)))
	c.structs = append(c.structs, st)
	allocated()

	return TypeRef{t: st, c: c}
}

// StructSetBody sets the element types of a named struct type.
func StructSetBody(t TypeRef, elems []TypeRef, count uint32, packed bool) {
	st := asStruct(t)

	st.Fields = unwrapTypes(elems, count)
	st.Packed = packed
	st.Opaque = false
}

func unwrapTypes(refs []TypeRef, count uint32) []types.Type {
	if int(count) > len(refs) {
		panic("llc: type array shorter than its count")
	}

	ts := make([]types.Type, count)
	for i := range ts {
		ts[i] = refs[i].live()
	}

	return ts
}

// -----------------------------------------------------------------------------

// GetTypeKind returns the kind of a type.
func GetTypeKind(t TypeRef) TypeKind {
	switch v := t.live().(type) {
	case *types.VoidType:
		return VoidTypeKind
	case *types.FloatType:
		if v.Kind == types.FloatKindDouble {
			return DoubleTypeKind
		}

		return FloatTypeKind
	case *types.LabelType:
		return LabelTypeKind
	case *types.IntType:
		return IntegerTypeKind
	case *types.FuncType:
		return FunctionTypeKind
	case *types.StructType:
		return StructTypeKind
	case *types.ArrayType:
		return ArrayTypeKind
	case *types.PointerType:
		return PointerTypeKind
	default:
		return OtherTypeKind
	}
}

// GetIntTypeWidth returns the bit width of an integer type.
func GetIntTypeWidth(t TypeRef) uint32 {
	it, ok := t.live().(*types.IntType)
	if !ok {
		panic("llc: not an integer type")
	}

	return uint32(it.BitSize)
}

// CountStructElementTypes returns the number of elements of a struct type.
func CountStructElementTypes(t TypeRef) uint32 {
	return uint32(len(asStruct(t).Fields))
}

// StructGetTypeAtIndex returns the element type of a struct at index i.
func StructGetTypeAtIndex(t TypeRef, i uint32) TypeRef {
	st := asStruct(t)
	if int(i) >= len(st.Fields) {
		panic("llc: struct element index out of range")
	}

	return TypeRef{t: st.Fields[i], c: t.c}
}

// IsPackedStruct reports whether a struct type is packed.
func IsPackedStruct(t TypeRef) bool {
	return asStruct(t).Packed
}

// IsOpaqueStruct reports whether a struct type has no body.
func IsOpaqueStruct(t TypeRef) bool {
	return asStruct(t).Opaque
}

// GetStructName returns the name of a struct type, empty for literal structs.
func GetStructName(t TypeRef) string {
	return asStruct(t).Name()
}

func asStruct(t TypeRef) *types.StructType {
	st, ok := t.live().(*types.StructType)
	if !ok {
		panic("llc: not a struct type")
	}

	return st
}

// GetElementType returns the element type of a pointer type.
func GetElementType(t TypeRef) TypeRef {
	pt, ok := t.live().(*types.PointerType)
	if !ok {
		panic("llc: not a pointer type")
	}

	return TypeRef{t: pt.ElemType, c: t.c}
}

// GetReturnType returns the return type of a function type.
func GetReturnType(t TypeRef) TypeRef {
	return TypeRef{t: asFunc(t).RetType, c: t.c}
}

// CountParamTypes returns the number of parameters of a function type.
func CountParamTypes(t TypeRef) uint32 {
	return uint32(len(asFunc(t).Params))
}

// GetParamTypes writes the parameter types of a function type into dst,
// which must have room for CountParamTypes entries.
func GetParamTypes(t TypeRef, dst []TypeRef) {
	ft := asFunc(t)
	if len(dst) < len(ft.Params) {
		panic("llc: destination shorter than parameter count")
	}

	for i, pt := range ft.Params {
		dst[i] = TypeRef{t: pt, c: t.c}
	}
}

// IsFunctionVarArg reports whether a function type is variadic.
func IsFunctionVarArg(t TypeRef) bool {
	return asFunc(t).Variadic
}

func asFunc(t TypeRef) *types.FuncType {
	ft, ok := t.live().(*types.FuncType)
	if !ok {
		panic("llc: not a function type")
	}

	return ft
}
