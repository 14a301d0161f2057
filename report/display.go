package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"brio/common"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a tagged error message to the console.
func PrintErrorMessage(tag, msg string) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + msg)
}

// PrintWarningMessage prints a tagged warning message to the console.
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints a tagged informational message to the console.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Println()
	ErrorStyleBG.Print("Internal Error")
	ErrorColorFG.Println(" " + message)
	fmt.Print("This error was not supposed to happen: please report it as a brio bug.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Println()
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
}

// displayCompileMessage displays a compilation error or warning.  The label
// is the string to prefix the message with: eg. if we want to display an
// error, the label is "error".
func displayCompileMessage(label, absPath, reprPath string, span *TextSpan, message string) {
	if span == nil {
		fmt.Printf("%s: %s: %s\n", reprPath, label, message)
	} else {
		fmt.Printf("%s:%d:%d: %s: %s\n", reprPath, span.StartLine+1, span.StartCol+1, label, message)

		if absPath != "" {
			displaySourceText(absPath, span)
		}
	}
	fmt.Println()
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	fmt.Printf("%s: error: %s\n\n", reprPath, err)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span,
// underlining the spanned characters.
func displaySourceText(absPath string, span *TextSpan) {
	// Open the file so we can read the desired source text.
	file, err := os.Open(absPath)
	if err != nil {
		ICE("failed to open file %s for reporting: %s", absPath, err)
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if err := sc.Err(); err != nil {
		ICE("failed to read file %s for reporting: %s", absPath, err)
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Calculate the maximum line number length and use it to generate the
	// format string for line numbers.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		// Print the line number, separator bar, and the source text with the
		// leading indent trimmed off.
		InfoColorFG.Printf(lineNumFmtStr, i+span.StartLine+1)
		fmt.Println(line[minIndent:])

		// Print the bar used for carret underlining.
		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// The number of spaces before carret underlining begins.  For any
		// line which is not the starting line, this is always zero since the
		// underlining is continuing from the previous line.
		var carretPrefixCount int
		if i == 0 {
			carretPrefixCount = span.StartCol - minIndent
		}

		// The number of characters at the end of the source line that should
		// not be underlined.  This is zero for all lines except the last,
		// where underlining stops at the end column.
		var carretSuffixCount int
		if i == len(lines)-1 {
			carretSuffixCount = len(line) - span.EndCol
		}

		fmt.Print(strings.Repeat(" ", carretPrefixCount))
		ErrorColorFG.Println(strings.Repeat("^", len(line)-carretSuffixCount-carretPrefixCount-minIndent))
	}
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before starting
// compilation.
func displayCompileHeader(reprPath string) {
	fmt.Print("brio ")
	InfoColorFG.Print("v" + common.BrioVersion)
	fmt.Print(" -- compiling: ")
	InfoColorFG.Println(reprPath)
}

// displayCompilationFinished displays a compilation finished message along
// with the error and warning totals.
func displayCompilationFinished(success bool, errorCount, warningCount int, outputPath string) {
	fmt.Println()

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Print(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Print(" warnings)")
	}

	if success && outputPath != "" {
		fmt.Print("\nwrote ")
		InfoColorFG.Println(outputPath)
	} else {
		fmt.Println()
	}
}
