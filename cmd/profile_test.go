package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irkit/report"
)

func writeProfile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	report.InitReporter(report.LogLevelSilent, io.Discard)

	path := writeProfile(t, `
irkit-version = "0.1.0"
output-dir = "ir"

[[modules]]
name = "arith"
sample = "add"
target-triple = "x86_64-unknown-linux-gnu"

[[modules]]
name = "branchy"
sample = "max"
`)

	prof, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, path, prof.Path)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "ir"), prof.OutputDir)
	require.Len(t, prof.Modules, 2)
	assert.Equal(t, ModuleConfig{Name: "arith", Sample: "add", TargetTriple: "x86_64-unknown-linux-gnu"}, prof.Modules[0])
	assert.Equal(t, filepath.Join(prof.OutputDir, "branchy.ll"), prof.Modules[1].OutputPath(prof))
	assert.True(t, report.ShouldProceed())
}

func TestLoadProfileDefaults(t *testing.T) {
	report.InitReporter(report.LogLevelSilent, io.Discard)

	path := writeProfile(t, `
[[modules]]
name = "m"
sample = "hello"
`)

	prof, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "out"), prof.OutputDir)
}

func TestLoadProfileErrors(t *testing.T) {
	report.InitReporter(report.LogLevelSilent, io.Discard)

	cases := []struct {
		name     string
		contents string
		want     []string
	}{
		{
			name:     "syntax",
			contents: "irkit-version = ",
			want:     []string{"error parsing profile"},
		},
		{
			name:     "no modules",
			contents: `irkit-version = "0.1.0"`,
			want:     []string{"at least one module"},
		},
		{
			name: "malformed version",
			contents: `
irkit-version = "1.x"
[[modules]]
name = "m"
sample = "add"
`,
			want: []string{"malformed irkit version"},
		},
		{
			name: "bad modules",
			contents: `
[[modules]]
name = "dup"
sample = "add"
[[modules]]
name = "dup"
sample = "add"
[[modules]]
name = "a/b"
sample = "add"
[[modules]]
name = "x"
sample = "missing"
`,
			want: []string{
				"module `dup` is declared more than once",
				`invalid module name "a/b"`,
				"unknown sample `missing`",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadProfile(writeProfile(t, tc.contents))
			require.Error(t, err)

			for _, want := range tc.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoadProfileMissing(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
