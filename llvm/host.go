package llvm

// ConstProducer is implemented by host values that can be materialized as a
// constant in a context.
type ConstProducer interface {
	MaterializeConst(c *Context) Constant
}

// TypeProducer is implemented by type markers that resolve to a type in a
// context.  Resolution never looks at the receiver's value, so the zero value
// of a marker is enough: see TypeFor.
type TypeProducer interface {
	ResolveType(c *Context) Type
}

// The host kinds below are both constant producers and type markers: a value
// of I32 is the constant, the type I32 is the marker for `i32`.
type (
	Bool bool
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	F32  float32
	F64  float64
)

func (v Bool) MaterializeConst(c *Context) Constant {
	var n uint64
	if v {
		n = 1
	}

	return ConstInt(c.Int1Type(), n, false)
}

func (Bool) ResolveType(c *Context) Type { return c.Int1Type() }

func (v I8) MaterializeConst(c *Context) Constant {
	return ConstInt(c.Int8Type(), uint64(v), true)
}

func (I8) ResolveType(c *Context) Type { return c.Int8Type() }

func (v I16) MaterializeConst(c *Context) Constant {
	return ConstInt(c.Int16Type(), uint64(v), true)
}

func (I16) ResolveType(c *Context) Type { return c.Int16Type() }

func (v I32) MaterializeConst(c *Context) Constant {
	return ConstInt(c.Int32Type(), uint64(v), true)
}

func (I32) ResolveType(c *Context) Type { return c.Int32Type() }

func (v I64) MaterializeConst(c *Context) Constant {
	return ConstInt(c.Int64Type(), uint64(v), true)
}

func (I64) ResolveType(c *Context) Type { return c.Int64Type() }

func (v U8) MaterializeConst(c *Context) Constant {
	return ConstInt(c.Int8Type(), uint64(v), false)
}

func (U8) ResolveType(c *Context) Type { return c.Int8Type() }

func (v U16) MaterializeConst(c *Context) Constant {
	return ConstInt(c.Int16Type(), uint64(v), false)
}

func (U16) ResolveType(c *Context) Type { return c.Int16Type() }

func (v U32) MaterializeConst(c *Context) Constant {
	return ConstInt(c.Int32Type(), uint64(v), false)
}

func (U32) ResolveType(c *Context) Type { return c.Int32Type() }

func (v U64) MaterializeConst(c *Context) Constant {
	return ConstInt(c.Int64Type(), uint64(v), false)
}

func (U64) ResolveType(c *Context) Type { return c.Int64Type() }

func (v F32) MaterializeConst(c *Context) Constant {
	return ConstReal(c.FloatType(), float64(v))
}

func (F32) ResolveType(c *Context) Type { return c.FloatType() }

func (v F64) MaterializeConst(c *Context) Constant {
	return ConstReal(c.DoubleType(), float64(v))
}

func (F64) ResolveType(c *Context) Type { return c.DoubleType() }

// Ptr is the type marker for a pointer to the type marked by T.  It has no
// constant form.
type Ptr[T TypeProducer] struct{}

func (Ptr[T]) ResolveType(c *Context) Type {
	return NewPointerType(TypeFor[T](c))
}
