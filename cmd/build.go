package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"irkit/llvm"
	"irkit/report"
)

// buildResult is the outcome of building one module of a profile.
type buildResult struct {
	outputPath string
	size       int64
	err        error
}

// Build builds every module of prof concurrently, each in its own context, and
// reports the outcome of each module in profile order.  It returns the number
// of modules that failed.
func Build(ctx context.Context, prof *BuildProfile, jobs int) int {
	if err := os.MkdirAll(prof.OutputDir, 0o755); err != nil {
		report.ReportFatal("unable to create output directory: %s", err)
		return len(prof.Modules)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// indices are unique per goroutine so the results need no locking
	results := make([]buildResult, len(prof.Modules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(prof.Modules)))

	for i, mc := range prof.Modules {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i].err = gctx.Err()
				return nil
			default:
			}

			results[i] = buildModule(prof, mc)
			return nil
		})
	}

	// goroutines never fail: errors are collected per module
	_ = g.Wait()

	failed := 0
	for i, res := range results {
		name := prof.Modules[i].Name
		if res.err != nil {
			report.ReportError("Build", fmt.Errorf("module `%s`: %w", name, res.err))
			failed++
			continue
		}

		report.ReportSuccess("Built", "%s -> %s (%d bytes)", name, res.outputPath, res.size)
	}

	return failed
}

// buildModule builds a single module in a fresh context and writes its
// textual IR to the output directory.
func buildModule(prof *BuildProfile, mc ModuleConfig) (res buildResult) {
	c := llvm.NewContext()
	defer c.Dispose()

	m, err := c.NewModule(mc.Name)
	if err != nil {
		res.err = err
		return
	}

	if err := configureModule(m, prof, mc); err != nil {
		res.err = err
		return
	}

	if err := samples[mc.Sample].Build(c, m); err != nil {
		res.err = fmt.Errorf("building sample `%s`: %w", mc.Sample, err)
		return
	}

	if err := m.Verify(); err != nil {
		res.err = err
		return
	}

	res.outputPath = mc.OutputPath(prof)
	res.size, res.err = writeModule(m, res.outputPath)
	return
}

// configureModule sets the module-level properties named by the profile.
func configureModule(m *llvm.Module, prof *BuildProfile, mc ModuleConfig) error {
	if err := m.SetSourceFileName(prof.Path); err != nil {
		return err
	}

	if mc.TargetTriple != "" {
		if err := m.SetTargetTriple(mc.TargetTriple); err != nil {
			return err
		}
	}

	if mc.DataLayout != "" {
		if err := m.SetDataLayout(mc.DataLayout); err != nil {
			return err
		}
	}

	return nil
}

// writeModule writes the textual IR of m to a new file at path.
func writeModule(m *llvm.Module, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := m.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return n, err
}
