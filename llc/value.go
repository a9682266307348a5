package llc

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Opcode identifies the operation of an instruction.
type Opcode int

// Enumeration of the opcodes the builder can emit.
const (
	Ret Opcode = iota + 1
	Br
	Unreachable
	Add
	Sub
	Mul
	SDiv
	And
	Or
	Xor
	Alloca
	Load
	Store
	GetElementPtr
	Trunc
	ZExt
	SExt
	PtrToInt
	IntToPtr
	BitCast
	ICmp
	Call
	ExtractValue
	InsertValue
)

// IntPredicate is the comparison performed by an `icmp` instruction.
type IntPredicate int

// Enumeration of integer predicates.
const (
	IntEQ IntPredicate = iota + 32
	IntNE
	IntUGT
	IntUGE
	IntULT
	IntULE
	IntSGT
	IntSGE
	IntSLT
	IntSLE
)

// inst records what the builder knew about an instruction when it emitted
// it.  Introspection reads this record instead of the IR node.
type inst struct {
	parent   *block
	op       Opcode
	operands []value.Value
	succs    []*block

	pred      IntPredicate
	allocated types.Type
	inBounds  bool
}

// ValueRef is an opaque reference to a value: a constant, a global, a
// function, a parameter or an instruction.  Instructions that produce no
// result (stores and terminators) are still referenced by a ValueRef.
type ValueRef struct {
	v any
	c *context
}

// IsNil reports whether the reference points at nothing.
func (r ValueRef) IsNil() bool {
	return r.v == nil
}

// operand returns the referenced value as an operand.  Aborts if the reference
// is to an instruction without a result.
func (r ValueRef) operand() value.Value {
	if r.v == nil {
		panic("llc: nil value")
	}

	r.c.check()

	v, ok := r.v.(value.Value)
	if !ok {
		panic("llc: instruction has no result value")
	}

	return v
}

func asInstruction(r ValueRef) *inst {
	if r.v == nil {
		panic("llc: nil value")
	}

	r.c.check()

	in, ok := r.c.insts[r.v]
	if !ok {
		panic("llc: not an instruction")
	}

	in.parent.fn.mod.check()
	return in
}

// -----------------------------------------------------------------------------

// TypeOf returns the type of a value.  Instructions without a result have
// type void.
func TypeOf(r ValueRef) TypeRef {
	r.c.check()

	if v, ok := r.v.(value.Value); ok {
		return TypeRef{t: v.Type(), c: r.c}
	}

	return TypeRef{t: types.Void, c: r.c}
}

// GetValueName returns the name of a value, empty if it is unnamed.
func GetValueName(r ValueRef) string {
	r.c.check()

	// llir reports the pending numeric ID for unnamed values.
	if u, ok := r.v.(interface{ IsUnnamed() bool }); ok && u.IsUnnamed() {
		return ""
	}

	if n, ok := r.v.(value.Named); ok {
		return n.Name()
	}

	return ""
}

// GetValueContext returns the context owning a value.
func GetValueContext(r ValueRef) ContextRef {
	r.c.check()
	return ContextRef{c: r.c}
}

// IsConstant reports whether a value is a constant.
func IsConstant(r ValueRef) bool {
	r.c.check()

	_, ok := r.v.(constant.Constant)
	return ok
}

// IsAFunction reports whether a value is a function.
func IsAFunction(r ValueRef) bool {
	r.c.check()

	_, ok := r.v.(*ir.Func)
	return ok
}

// IsAInstruction reports whether a value is an instruction.
func IsAInstruction(r ValueRef) bool {
	r.c.check()

	_, ok := r.c.insts[r.v]
	return ok
}

// -----------------------------------------------------------------------------

// GetInstructionOpcode returns the opcode of an instruction.
func GetInstructionOpcode(r ValueRef) Opcode {
	return asInstruction(r).op
}

// IsATerminatorInst reports whether an instruction is a terminator.
func IsATerminatorInst(r ValueRef) bool {
	switch asInstruction(r).op {
	case Ret, Br, Unreachable:
		return true
	default:
		return false
	}
}

// GetInstructionParent returns the block containing an instruction.
func GetInstructionParent(r ValueRef) BasicBlockRef {
	return BasicBlockRef{b: asInstruction(r).parent}
}

// GetNumOperands returns the number of value operands of an instruction.
// Branch targets are not operands; see GetNumSuccessors.
func GetNumOperands(r ValueRef) uint32 {
	return uint32(len(asInstruction(r).operands))
}

// GetOperand returns the value operand of an instruction at index i.
func GetOperand(r ValueRef, i uint32) ValueRef {
	in := asInstruction(r)
	if int(i) >= len(in.operands) {
		panic("llc: operand index out of range")
	}

	return ValueRef{v: in.operands[i], c: r.c}
}

// GetNumSuccessors returns the number of successor blocks of a terminator.
func GetNumSuccessors(r ValueRef) uint32 {
	return uint32(len(asInstruction(r).succs))
}

// GetSuccessor returns the successor block of a terminator at index i.
func GetSuccessor(r ValueRef, i uint32) BasicBlockRef {
	in := asInstruction(r)
	if int(i) >= len(in.succs) {
		panic("llc: successor index out of range")
	}

	return BasicBlockRef{b: in.succs[i]}
}

// GetICmpPredicate returns the predicate of an `icmp` instruction.
func GetICmpPredicate(r ValueRef) IntPredicate {
	in := asInstruction(r)
	if in.op != ICmp {
		panic("llc: not an icmp instruction")
	}

	return in.pred
}

// GetNumArgOperands returns the number of arguments of a `call` instruction.
func GetNumArgOperands(r ValueRef) uint32 {
	in := asInstruction(r)
	if in.op != Call {
		panic("llc: not a call instruction")
	}

	// The callee is the last operand.
	return uint32(len(in.operands) - 1)
}

// GetCalledValue returns the callee of a `call` instruction.
func GetCalledValue(r ValueRef) ValueRef {
	in := asInstruction(r)
	if in.op != Call {
		panic("llc: not a call instruction")
	}

	return ValueRef{v: in.operands[len(in.operands)-1], c: r.c}
}

// GetAllocatedType returns the type allocated by an `alloca` instruction.
func GetAllocatedType(r ValueRef) TypeRef {
	in := asInstruction(r)
	if in.op != Alloca {
		panic("llc: not an alloca instruction")
	}

	return TypeRef{t: in.allocated, c: r.c}
}

// IsInBounds reports whether a `getelementptr` instruction is inbounds.
func IsInBounds(r ValueRef) bool {
	in := asInstruction(r)
	if in.op != GetElementPtr {
		panic("llc: not a getelementptr instruction")
	}

	return in.inBounds
}
