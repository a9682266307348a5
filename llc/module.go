package llc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// module is the native state behind a ModuleRef.
type module struct {
	m        *ir.Module
	c        *context
	ident    string
	disposed bool

	// Global symbol names, shared by functions and global variables.
	names map[string]int
	funcs []*function
}

// ModuleRef is an opaque reference to a native module.
type ModuleRef struct {
	m *module
}

// IsNil reports whether the reference points at nothing.
func (r ModuleRef) IsNil() bool {
	return r.m == nil
}

func (r ModuleRef) live() *module {
	if r.m == nil {
		panic("llc: nil module")
	}

	r.m.check()
	return r.m
}

func (m *module) check() {
	m.c.check()

	if m.disposed {
		panic("llc: use of disposed module " + m.ident)
	}
}

// ModuleCreateWithNameInContext creates an empty module in a context.
func ModuleCreateWithNameInContext(name CString, r ContextRef) ModuleRef {
	c := r.live()
	ident := goString(name)

	m := ir.NewModule()
	m.SourceFilename = ident

	stats.modulesCreated.Add(1)
	allocated()

	return ModuleRef{m: &module{
		m:     m,
		c:     c,
		ident: ident,
		names: make(map[string]int),
	}}
}

// DisposeModule releases a module and everything it contains.  Disposing a
// module twice, or after its context, aborts.
func DisposeModule(r ModuleRef) {
	m := r.live()
	m.disposed = true

	for _, fn := range m.funcs {
		for _, bb := range fn.blocks {
			for _, in := range bb.list() {
				delete(m.c.insts, in)
			}

			delete(m.c.blocks, bb.b)
		}

		delete(m.c.funcs, fn.f)
	}

	m.funcs = nil
	stats.modulesDisposed.Add(1)
}

// GetModuleContext returns the context that owns a module.
func GetModuleContext(r ModuleRef) ContextRef {
	return ContextRef{c: r.live().c}
}

// GetModuleIdentifier returns the module's name.
func GetModuleIdentifier(r ModuleRef) string {
	return r.live().ident
}

// SetModuleIdentifier renames a module.
func SetModuleIdentifier(r ModuleRef, name CString) {
	r.live().ident = goString(name)
}

// GetSourceFileName returns the source file name recorded in the module.
func GetSourceFileName(r ModuleRef) string {
	return r.live().m.SourceFilename
}

// SetSourceFileName sets the source file name recorded in the module.
func SetSourceFileName(r ModuleRef, name CString) {
	r.live().m.SourceFilename = goString(name)
}

// GetTarget returns the module's target triple.
func GetTarget(r ModuleRef) string {
	return r.live().m.TargetTriple
}

// SetTarget sets the module's target triple.
func SetTarget(r ModuleRef, triple CString) {
	r.live().m.TargetTriple = goString(triple)
}

// GetDataLayout returns the module's data layout string.
func GetDataLayout(r ModuleRef) string {
	return r.live().m.DataLayout
}

// SetDataLayout sets the module's data layout string.
func SetDataLayout(r ModuleRef, layout CString) {
	r.live().m.DataLayout = goString(layout)
}

// -----------------------------------------------------------------------------

// AddFunction declares a function of type ft in a module.  If the name is
// taken, a numeric suffix makes it unique.
func AddFunction(r ModuleRef, name CString, ft TypeRef) ValueRef {
	m := r.live()
	sig := asFunc(ft)

	params := make([]*ir.Param, len(sig.Params))
	for i, pt := range sig.Params {
		params[i] = ir.NewParam("", pt)
	}

	f := m.m.NewFunc(uniqueName(m.names, goString(name)), sig.RetType, params...)
	f.Sig.Variadic = sig.Variadic

	fn := &function{f: f, mod: m, names: make(map[string]int)}
	m.funcs = append(m.funcs, fn)
	m.c.funcs[f] = fn
	allocated()

	return ValueRef{v: f, c: m.c}
}

// GetNamedFunction returns the function called name, or a nil reference.
func GetNamedFunction(r ModuleRef, name CString) ValueRef {
	m := r.live()
	want := goString(name)

	for _, fn := range m.funcs {
		if fn.f.Name() == want {
			return ValueRef{v: fn.f, c: m.c}
		}
	}

	return ValueRef{}
}

// GetFirstFunction returns the first function of a module, or a nil
// reference if it has none.
func GetFirstFunction(r ModuleRef) ValueRef {
	m := r.live()
	if len(m.funcs) == 0 {
		return ValueRef{}
	}

	return ValueRef{v: m.funcs[0].f, c: m.c}
}

// GetNextFunction returns the function following fn in its module, or a nil
// reference at the end.
func GetNextFunction(fn ValueRef) ValueRef {
	f := asFunction(fn)

	for i, other := range f.mod.funcs {
		if other == f && i+1 < len(f.mod.funcs) {
			return ValueRef{v: f.mod.funcs[i+1].f, c: fn.c}
		}
	}

	return ValueRef{}
}

// CountFunctions returns the number of functions in a module.
func CountFunctions(r ModuleRef) uint32 {
	return uint32(len(r.live().funcs))
}

// -----------------------------------------------------------------------------

// VerifyModule checks the structural well-formedness of every function body:
// each block must end in exactly one terminator.
func VerifyModule(r ModuleRef) error {
	m := r.live()

	var errs []error
	for _, fn := range m.funcs {
		for _, bb := range fn.blocks {
			if bb.b.Term == nil {
				errs = append(errs, fmt.Errorf("basic block %q in function %q does not have a terminator", bb.b.Name(), fn.f.Name()))
			} else if len(bb.trailing) > 0 {
				errs = append(errs, fmt.Errorf("basic block %q in function %q has %d instruction(s) after its terminator", bb.b.Name(), fn.f.Name(), len(bb.trailing)))
			}
		}
	}

	return errors.Join(errs...)
}

// PrintModule writes the textual IR of a module to w.  Only well-formed
// modules can be printed: the result of VerifyModule is returned otherwise.
func PrintModule(r ModuleRef, w io.Writer) (int64, error) {
	m := r.live()

	if err := VerifyModule(r); err != nil {
		return 0, err
	}

	m.m.TypeDefs = m.m.TypeDefs[:0]
	for _, st := range m.c.structs {
		m.m.TypeDefs = append(m.m.TypeDefs, types.Type(st))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "; ModuleID = '%s'\n", m.ident)
	sb.WriteString(m.m.String())

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
