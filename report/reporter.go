package report

import "sync"

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the
// set log level and is synchronized: its methods can be safely called from
// multiple goroutines.
type Reporter struct {
	// The mutex used to synchronize different report method calls.
	m sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors and warnings reported so far.
	errorCount   int
	warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// rep is the global reporter instance.
var rep = &Reporter{logLevel: LogLevelVerbose}

// InitReporter initializes the global reporter to the given log level and
// resets its error and warning counts.
func InitReporter(logLevel int) {
	rep = &Reporter{logLevel: logLevel}
}

// ShouldProceed indicates whether or not there have been any errors that
// should cause compilation to stop at the current phase.
func ShouldProceed() bool {
	return rep.errorCount == 0
}

// ErrorCount returns the number of errors reported so far.
func ErrorCount() int {
	return rep.errorCount
}

// WarningCount returns the number of warnings reported so far.
func WarningCount() int {
	return rep.warningCount
}
