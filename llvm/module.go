package llvm

import (
	"io"
	"strings"

	"irkit/llc"
)

// Module represents a module: a named container of functions and globals.
type Module struct {
	c   llc.ModuleRef
	ctx *Context

	disposed bool
}

// dispose disposes of the module if that has not happened already.
func (m *Module) dispose() {
	if m.disposed {
		return
	}

	llc.DisposeModule(m.c)
	m.disposed = true
}

// Dispose frees the module and everything in it.  Calls after the first,
// including the one made when the owning context is disposed, have no effect.
func (m *Module) Dispose() {
	m.dispose()
}

// Ref returns the native module reference.
func (m *Module) Ref() llc.ModuleRef {
	return m.c
}

// Context returns the context that owns the module.
func (m *Module) Context() *Context {
	return m.ctx
}

// -----------------------------------------------------------------------------

// Name returns the name of the module.
func (m *Module) Name() string {
	return llc.GetModuleIdentifier(m.c)
}

// SetName sets the name of the module.
func (m *Module) SetName(name string) error {
	cname, err := cstring(name)
	if err != nil {
		return err
	}

	llc.SetModuleIdentifier(m.c, cname)
	return nil
}

// SourceFileName returns the source file name of the module.
func (m *Module) SourceFileName() string {
	return llc.GetSourceFileName(m.c)
}

// SetSourceFileName sets the source file name of the module to name.
func (m *Module) SetSourceFileName(name string) error {
	cname, err := cstring(name)
	if err != nil {
		return err
	}

	llc.SetSourceFileName(m.c, cname)
	return nil
}

// DataLayout returns the data layout string of the module.
func (m *Module) DataLayout() string {
	return llc.GetDataLayout(m.c)
}

// SetDataLayout sets the data layout string of the module.
func (m *Module) SetDataLayout(layout string) error {
	clayout, err := cstring(layout)
	if err != nil {
		return err
	}

	llc.SetDataLayout(m.c, clayout)
	return nil
}

// TargetTriple returns the target triple string of the module.
func (m *Module) TargetTriple() string {
	return llc.GetTarget(m.c)
}

// SetTargetTriple sets the target triple string of the module.
func (m *Module) SetTargetTriple(triple string) error {
	ctriple, err := cstring(triple)
	if err != nil {
		return err
	}

	llc.SetTarget(m.c, ctriple)
	return nil
}

// -----------------------------------------------------------------------------

// AddFunction adds a new function declaration to the module.  A function
// becomes a definition once blocks are appended to it.
func (m *Module) AddFunction(name string, funcType FunctionType) (fn Function, err error) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	if debugChecks {
		assertSameContext(m.ctx, llc.TypeContext(funcType.c), "AddFunction type")
	}

	fn.c = llc.AddFunction(m.c, cname, funcType.c)
	return
}

// GetFunction returns the declared function corresponding to name.
func (m *Module) GetFunction(name string) (fn Function, exists bool) {
	cname, err := cstring(name)
	if err != nil {
		return
	}

	fn.c = llc.GetNamedFunction(m.c, cname)
	exists = !fn.c.IsNil()
	return
}

// NumFunctions returns the number of functions in the module.
func (m *Module) NumFunctions() int {
	return int(llc.CountFunctions(m.c))
}

// funcIter is an iterator over the functions of a module.
type funcIter struct {
	curr, next llc.ValueRef
}

func (it *funcIter) Item() (fn Function) {
	fn.c = it.curr
	return
}

func (it *funcIter) Next() bool {
	it.curr = it.next
	if it.curr.IsNil() {
		return false
	}

	it.next = llc.GetNextFunction(it.curr)
	return true
}

// Functions returns an iterator of the functions of the module.
func (m *Module) Functions() Iterator[Function] {
	return &funcIter{next: llc.GetFirstFunction(m.c)}
}

// -----------------------------------------------------------------------------

// Verify verifies that every function body in the module is well-formed.
func (m *Module) Verify() error {
	return llc.VerifyModule(m.c)
}

// WriteTo writes the textual IR of the module to w.  Modules that do not
// verify are not written.
func (m *Module) WriteTo(w io.Writer) (int64, error) {
	return llc.PrintModule(m.c, w)
}

// String returns the textual IR of the module, or the verification error
// message if it does not verify.
func (m *Module) String() string {
	var sb strings.Builder
	if _, err := m.WriteTo(&sb); err != nil {
		return err.Error()
	}

	return sb.String()
}
