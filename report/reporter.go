// Package report displays errors, warnings and progress messages to the user.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchonize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The writer all messages are displayed to.
	out io.Writer

	// The number of errors reported so far.
	errorCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// logLevelNames maps the names accepted on the command line to log levels.
var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// ParseLogLevel returns the log level corresponding to name.
func ParseLogLevel(name string) (int, bool) {
	lvl, ok := logLevelNames[name]
	return lvl, ok
}

// rep is the global reporter instance.
var rep = newReporter(LogLevelVerbose, os.Stdout)

func newReporter(logLevel int, out io.Writer) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		out:      out,
	}
}

// InitReporter initializes the global reporter to the given log level writing
// to out.  Any previously reported errors are forgotten.
func InitReporter(logLevel int, out io.Writer) {
	rep = newReporter(logLevel, out)
}

// -----------------------------------------------------------------------------

// ReportError reports a non-fatal error: the current command keeps going but
// will fail at the end.  The tag names what the error is about.
func ReportError(tag string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayError(rep.out, tag, err.Error())
	}
}

// ReportFatal reports an error that stops the current command.  These are
// expected errors resulting from invalid input: a missing profile, malformed
// arguments, etc.
func ReportFatal(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayFatal(rep.out, fmt.Sprintf(message, args...))
	}
}

// ReportWarning reports a warning.
func ReportWarning(tag, message string, args ...interface{}) {
	if rep.logLevel >= LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayWarning(rep.out, tag, fmt.Sprintf(message, args...))
	}
}

// ReportInfo reports an informational message.
func ReportInfo(tag, message string, args ...interface{}) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayInfo(rep.out, tag, fmt.Sprintf(message, args...))
	}
}

// ReportSuccess reports the successful completion of a step.
func ReportSuccess(tag, message string, args ...interface{}) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displaySuccess(rep.out, tag, fmt.Sprintf(message, args...))
	}
}

// -----------------------------------------------------------------------------

// ShouldProceed indicates whether or not there have been any errors that
// should cause the current command to stop.
func ShouldProceed() bool {
	return ErrorCount() == 0
}

// ErrorCount returns the number of errors reported so far.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}

// DisplayInfoMessage displays an informational message regardless of the log
// level.  It is used for output the user explicitly asked for.
func DisplayInfoMessage(tag, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayInfo(rep.out, tag, fmt.Sprintf(message, args...))
}
