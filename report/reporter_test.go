package report

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func init() {
	pterm.DisableColor()
}

func TestLogLevelFiltering(t *testing.T) {
	cases := []struct {
		level    string
		visible  []string
		filtered []string
	}{
		{"silent", nil, []string{"boom", "careful", "hello", "done"}},
		{"error", []string{"boom"}, []string{"careful", "hello", "done"}},
		{"warn", []string{"boom", "careful"}, []string{"hello", "done"}},
		{"verbose", []string{"boom", "careful", "hello", "done"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			lvl, ok := ParseLogLevel(tc.level)
			assert.True(t, ok)

			var sb strings.Builder
			InitReporter(lvl, &sb)

			ReportError("Build", errors.New("boom"))
			ReportWarning("Profile", "careful")
			ReportInfo("Info", "hello")
			ReportSuccess("Done", "done")

			for _, s := range tc.visible {
				assert.Contains(t, sb.String(), s)
			}

			for _, s := range tc.filtered {
				assert.NotContains(t, sb.String(), s)
			}

			// Errors are counted even when they are not displayed.
			assert.Equal(t, 1, ErrorCount())
			assert.False(t, ShouldProceed())
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	_, ok := ParseLogLevel("loud")
	assert.False(t, ok)
}

func TestFatalFormatsMessage(t *testing.T) {
	var sb strings.Builder
	InitReporter(LogLevelError, &sb)
	assert.True(t, ShouldProceed())

	ReportFatal("missing profile %q", "a.toml")
	assert.Contains(t, sb.String(), "Fatal Error")
	assert.Contains(t, sb.String(), `missing profile "a.toml"`)
	assert.Equal(t, 1, ErrorCount())
}

func TestConcurrentReports(t *testing.T) {
	var sb strings.Builder
	InitReporter(LogLevelVerbose, &sb)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ReportError("Build", errors.New("failed"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, ErrorCount())
	assert.Equal(t, 16, strings.Count(sb.String(), "failed"))
}
