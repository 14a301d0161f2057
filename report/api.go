package report

import (
	"fmt"
	"os"
)

// NOTE: All report functions will only display if the appropriate log level
// is set.  Errors and warnings are still counted when display is suppressed
// so that exit codes and ShouldProceed stay accurate in silent mode.

// ReportCompileError reports a compilation error: ie. erroneous input code.
// The absPath is the absolute path to the erroneous source file; it may be
// empty when the source did not come from a file (eg. REPL input), in which
// case no source excerpt is printed.  The reprPath is the representative path
// used to label the message.  The span may be nil in which case no position
// information will be printed.
func ReportCompileError(absPath, reprPath string, span *TextSpan, msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage("error", absPath, reprPath, span, fmt.Sprintf(msg, args...))
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of
// the same form as those to ReportCompileError.
func ReportCompileWarning(absPath, reprPath string, span *TextSpan, msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warningCount++

	if rep.logLevel > LogLevelError {
		displayCompileMessage("warning", absPath, reprPath, span, fmt.Sprintf(msg, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayStdError(reprPath, err)
	}
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately.  However, they are expected errors that
// generally result from invalid configuration of some form: a missing source
// file, an unreadable project file, etc.
func ReportFatal(msg string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		displayFatal(fmt.Sprintf(msg, args...))
		rep.m.Unlock()
	}

	os.Exit(1)
}

// -----------------------------------------------------------------------------
// Below are the "aesthetic" reporting functions that only run if the log
// level is verbose.  These provide additional information about the
// compilation process so as to make the compiler more friendly.

// ReportCompileHeader reports the pre-compilation header: the compiler
// version and the file being compiled.
func ReportCompileHeader(reprPath string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayCompileHeader(reprPath)
	}
}

// ReportCompilationFinished reports the concluding message for compilation:
// whether it succeeded and how many errors and warnings occurred along the
// way.
func ReportCompilationFinished(outputPath string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayCompilationFinished(rep.errorCount == 0, rep.errorCount, rep.warningCount, outputPath)
	}
}
