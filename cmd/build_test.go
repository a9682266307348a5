package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irkit/llc"
	"irkit/llvm"
	"irkit/report"
)

func TestSamplesVerify(t *testing.T) {
	for _, name := range sampleNames() {
		t.Run(name, func(t *testing.T) {
			c := llvm.NewContext()
			defer c.Dispose()

			m, err := c.NewModule(name)
			require.NoError(t, err)

			require.NoError(t, samples[name].Build(c, m))
			require.NoError(t, m.Verify())
			assert.Positive(t, m.NumFunctions())
		})
	}
}

func TestBuildWritesEveryModule(t *testing.T) {
	report.InitReporter(report.LogLevelSilent, io.Discard)

	dir := t.TempDir()
	prof := &BuildProfile{
		Path:      filepath.Join(dir, "profile.toml"),
		OutputDir: filepath.Join(dir, "out"),
	}

	for _, name := range sampleNames() {
		prof.Modules = append(prof.Modules, ModuleConfig{
			Name:         "m_" + name,
			Sample:       name,
			TargetTriple: "x86_64-unknown-linux-gnu",
		})
	}

	before := llc.ReadStats()
	require.Zero(t, Build(context.Background(), prof, 2))
	after := llc.ReadStats()

	// every module gets its own context, and every context is released
	n := int64(len(prof.Modules))
	assert.Equal(t, n, after.ContextsCreated-before.ContextsCreated)
	assert.Equal(t, n, after.ContextsDisposed-before.ContextsDisposed)
	assert.Equal(t, after.BuildersCreated-before.BuildersCreated, after.BuildersDisposed-before.BuildersDisposed)

	for _, mc := range prof.Modules {
		text, err := os.ReadFile(mc.OutputPath(prof))
		require.NoError(t, err)
		assert.Contains(t, string(text), "; ModuleID = '"+mc.Name+"'")
		assert.Contains(t, string(text), `target triple = "x86_64-unknown-linux-gnu"`)
	}

	assert.True(t, report.ShouldProceed())
}

func TestBuildReportsFailures(t *testing.T) {
	report.InitReporter(report.LogLevelSilent, io.Discard)

	dir := t.TempDir()
	prof := &BuildProfile{
		Path:      filepath.Join(dir, "profile.toml"),
		OutputDir: filepath.Join(dir, "out"),
		Modules: []ModuleConfig{
			{Name: "ok", Sample: "add"},
			{Name: "bad", Sample: "add", DataLayout: "e\x00"},
		},
	}

	assert.Equal(t, 1, Build(context.Background(), prof, 0))
	assert.Equal(t, 1, report.ErrorCount())
	assert.FileExists(t, filepath.Join(prof.OutputDir, "ok.ll"))
	assert.NoFileExists(t, filepath.Join(prof.OutputDir, "bad.ll"))
}
