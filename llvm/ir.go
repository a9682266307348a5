package llvm

import (
	"irkit/llc"
)

// OpCode represents an instruction opcode.
type OpCode llc.Opcode

// Enumeration of the opcodes the builder emits.
const (
	RetOpCode           OpCode = OpCode(llc.Ret)
	BrOpCode            OpCode = OpCode(llc.Br)
	UnreachableOpCode   OpCode = OpCode(llc.Unreachable)
	AddOpCode           OpCode = OpCode(llc.Add)
	SubOpCode           OpCode = OpCode(llc.Sub)
	MulOpCode           OpCode = OpCode(llc.Mul)
	SDivOpCode          OpCode = OpCode(llc.SDiv)
	AndOpCode           OpCode = OpCode(llc.And)
	OrOpCode            OpCode = OpCode(llc.Or)
	XorOpCode           OpCode = OpCode(llc.Xor)
	AllocaOpCode        OpCode = OpCode(llc.Alloca)
	LoadOpCode          OpCode = OpCode(llc.Load)
	StoreOpCode         OpCode = OpCode(llc.Store)
	GetElementPtrOpCode OpCode = OpCode(llc.GetElementPtr)
	TruncOpCode         OpCode = OpCode(llc.Trunc)
	ZExtOpCode          OpCode = OpCode(llc.ZExt)
	SExtOpCode          OpCode = OpCode(llc.SExt)
	PtrToIntOpCode      OpCode = OpCode(llc.PtrToInt)
	IntToPtrOpCode      OpCode = OpCode(llc.IntToPtr)
	BitCastOpCode       OpCode = OpCode(llc.BitCast)
	ICmpOpCode          OpCode = OpCode(llc.ICmp)
	CallOpCode          OpCode = OpCode(llc.Call)
	ExtractValueOpCode  OpCode = OpCode(llc.ExtractValue)
	InsertValueOpCode   OpCode = OpCode(llc.InsertValue)
)

// UserValue represents a value which has operands.
type UserValue struct {
	valueBase
}

// NumOperands returns the number of operands of the value.
func (uv UserValue) NumOperands() int {
	return int(llc.GetNumOperands(uv.c))
}

// Operand retrieves the operand at index ndx.
func (uv UserValue) Operand(ndx int) Value {
	if 0 <= ndx && ndx < uv.NumOperands() {
		return valueBase{c: llc.GetOperand(uv.c, uint32(ndx))}
	}

	panic("llvm: operand index out of bounds")
}

// Instruction represents an instruction.
type Instruction struct {
	UserValue
}

// OpCode returns the opcode of the instruction.
func (instr Instruction) OpCode() OpCode {
	return OpCode(llc.GetInstructionOpcode(instr.c))
}

// IsTerminator returns whether the instruction is a terminator.
func (instr Instruction) IsTerminator() bool {
	return llc.IsATerminatorInst(instr.c)
}

// Parent returns the parent block of the instruction.
func (instr Instruction) Parent() BasicBlock {
	return BasicBlock{c: llc.GetInstructionParent(instr.c)}
}

// -----------------------------------------------------------------------------

// IntPredicate represents the predicate of an `icmp` instruction.
type IntPredicate llc.IntPredicate

// Enumeration of valid int predicates.
const (
	IntEQ  IntPredicate = IntPredicate(llc.IntEQ)
	IntNE  IntPredicate = IntPredicate(llc.IntNE)
	IntUGT IntPredicate = IntPredicate(llc.IntUGT)
	IntUGE IntPredicate = IntPredicate(llc.IntUGE)
	IntULT IntPredicate = IntPredicate(llc.IntULT)
	IntULE IntPredicate = IntPredicate(llc.IntULE)
	IntSGT IntPredicate = IntPredicate(llc.IntSGT)
	IntSGE IntPredicate = IntPredicate(llc.IntSGE)
	IntSLT IntPredicate = IntPredicate(llc.IntSLT)
	IntSLE IntPredicate = IntPredicate(llc.IntSLE)
)

// ICmpInstruction represents an `icmp` instruction.
type ICmpInstruction struct {
	Instruction
}

// Predicate returns the int predicate of the `icmp` instruction.
func (ici ICmpInstruction) Predicate() IntPredicate {
	return IntPredicate(llc.GetICmpPredicate(ici.c))
}

// -----------------------------------------------------------------------------

// CallInstruction represents a `call` instruction.
type CallInstruction struct {
	Instruction
}

// NumArgs returns the number of arguments passed to the call instruction.
func (ci CallInstruction) NumArgs() int {
	return int(llc.GetNumArgOperands(ci.c))
}

// Callee returns the function called by the instruction.
func (ci CallInstruction) Callee() Value {
	return valueBase{c: llc.GetCalledValue(ci.c)}
}

// -----------------------------------------------------------------------------

// Terminator represents a terminator instruction.
type Terminator struct {
	Instruction
}

// NumSuccessors returns the number of successors of this terminator.
func (term Terminator) NumSuccessors() int {
	return int(llc.GetNumSuccessors(term.c))
}

// Successor gets the successor of this terminator at ndx.
func (term Terminator) Successor(ndx int) BasicBlock {
	if 0 <= ndx && ndx < term.NumSuccessors() {
		return BasicBlock{c: llc.GetSuccessor(term.c, uint32(ndx))}
	}

	panic("llvm: successor index out of bounds")
}

// -----------------------------------------------------------------------------

// AllocaInstruction represents an `alloca` instruction.
type AllocaInstruction struct {
	Instruction
}

// AllocatedType returns the allocated type of the instruction.
func (ai AllocaInstruction) AllocatedType() Type {
	return wrapType(llc.GetAllocatedType(ai.c))
}

// -----------------------------------------------------------------------------

// GEPInstruction represents a `getelementptr` instruction.
type GEPInstruction struct {
	Instruction
}

// IsInBounds returns whether or not the GEP instruction is in bounds.
func (gep GEPInstruction) IsInBounds() bool {
	return llc.IsInBounds(gep.c)
}

// -----------------------------------------------------------------------------

// BasicBlock represents a basic block.  The zero value is not a block.
type BasicBlock struct {
	c llc.BasicBlockRef
}

// IsNil returns whether the handle references no block.
func (bb BasicBlock) IsNil() bool {
	return bb.c.IsNil()
}

// Name returns the name of the basic block.
func (bb BasicBlock) Name() string {
	return llc.GetBasicBlockName(bb.c)
}

// Terminator returns the terminator instruction of a basic block.
func (bb BasicBlock) Terminator() (term Terminator, exists bool) {
	termRef := llc.GetBasicBlockTerminator(bb.c)

	if !termRef.IsNil() {
		term.c = termRef
		exists = true
	}

	return
}

// Parent returns the parent function of the basic block.
func (bb BasicBlock) Parent() (fn Function) {
	fn.c = llc.GetBasicBlockParent(bb.c)
	return
}

// instrIter is an iterator over the instruction of a basic block.
type instrIter struct {
	curr, next llc.ValueRef
}

func (it *instrIter) Item() (instr Instruction) {
	instr.c = it.curr
	return
}

func (it *instrIter) Next() bool {
	it.curr = it.next
	if it.curr.IsNil() {
		return false
	}

	it.next = llc.GetNextInstruction(it.curr)
	return true
}

// Instructions returns an iterator over the instructions of a basic block.
func (bb BasicBlock) Instructions() Iterator[Instruction] {
	return &instrIter{next: llc.GetFirstInstruction(bb.c)}
}

// NumInstructions returns the number of instructions in the basic block.
func (bb BasicBlock) NumInstructions() int {
	return int(llc.CountInstructions(bb.c))
}

// First returns the first instruction in a basic block.
func (bb BasicBlock) First() (instr Instruction, exists bool) {
	instrRef := llc.GetFirstInstruction(bb.c)

	if !instrRef.IsNil() {
		instr.c = instrRef
		exists = true
	}

	return
}

// Last returns the last instruction in a basic block.
func (bb BasicBlock) Last() (instr Instruction, exists bool) {
	instrRef := llc.GetLastInstruction(bb.c)

	if !instrRef.IsNil() {
		instr.c = instrRef
		exists = true
	}

	return
}

// -----------------------------------------------------------------------------

// GlobalValue represents a global value.
type GlobalValue struct {
	valueBase
}

// Function represents a function.
type Function struct {
	GlobalValue
}

// Signature returns the type of the function.
func (f Function) Signature() (ft FunctionType) {
	ft.c = llc.GetElementType(llc.TypeOf(f.c))
	return
}

// NumParams returns the number of parameters of the function.
func (f Function) NumParams() int {
	return int(llc.CountParams(f.c))
}

// Param returns the function parameter at index ndx.
func (f Function) Param(ndx int) (fp FuncParam) {
	if 0 <= ndx && ndx < f.NumParams() {
		fp.c = llc.GetParam(f.c, uint32(ndx))
		return
	}

	panic("llvm: parameter index out of bounds")
}

// SetParamName names the function parameter at index ndx.
func (f Function) SetParamName(ndx int, name string) error {
	if ndx < 0 || ndx >= f.NumParams() {
		panic("llvm: parameter index out of bounds")
	}

	cname, err := cstring(name)
	if err != nil {
		return err
	}

	llc.SetParamName(f.c, uint32(ndx), cname)
	return nil
}

// NumBlocks returns the number of basic blocks in the function body.
func (f Function) NumBlocks() int {
	return int(llc.CountBasicBlocks(f.c))
}

// EntryBlock returns the first basic block in the function body.
func (f Function) EntryBlock() (bb BasicBlock, exists bool) {
	bb.c = llc.GetFirstBasicBlock(f.c)
	exists = !bb.c.IsNil()
	return
}

// LastBlock returns the last basic block in the function body.
func (f Function) LastBlock() (bb BasicBlock, exists bool) {
	bb.c = llc.GetLastBasicBlock(f.c)
	exists = !bb.c.IsNil()
	return
}

// bodyIter is an iterator over the body of a function.
type bodyIter struct {
	curr, next llc.BasicBlockRef
}

func (it *bodyIter) Item() (bb BasicBlock) {
	bb.c = it.curr
	return
}

func (it *bodyIter) Next() bool {
	it.curr = it.next
	if it.curr.IsNil() {
		return false
	}

	it.next = llc.GetNextBasicBlock(it.curr)
	return true
}

// Blocks returns an iterator over the blocks of a function body.
func (f Function) Blocks() Iterator[BasicBlock] {
	return &bodyIter{next: llc.GetFirstBasicBlock(f.c)}
}
