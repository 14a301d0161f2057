package repl

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"brio/ast"
	"brio/common"
	"brio/lower"
	"brio/report"
	"brio/syntax"
)

// replName is the representative path used to label messages produced by REPL
// input.
const replName = "<repl>"

// prompt is the REPL input prompt.  Continuation lines are prompted with
// blanks of the same width so that input columns line up.
const prompt = "brio> "

// Run starts an interactive session: it reads definitions and expressions
// line by line, lowers them through a single session, and prints the
// resulting IR.  It returns once the input ends.
func Run() error {
	sess := lower.NewSession(lower.WithSourceName(replName))
	opers := syntax.NewOperTable()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{sess: sess},
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Printf("brio v%s -- type :help for help\n", common.BrioVersion)

	contPrompt := strings.Repeat(" ", len(prompt))

	var buff strings.Builder
	for {
		lineBytes, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			// Ctrl-C drops whatever input is buffered.
			buff.Reset()
			rl.SetPrompt(prompt)
			continue
		} else if err != nil {
			// Ctrl-D or closed input.
			return nil
		}

		line := string(lineBytes)

		if buff.Len() == 0 {
			trimmed := string(bytes.TrimSpace(lineBytes))
			if trimmed == "" {
				continue
			}

			if strings.HasPrefix(trimmed, ":") {
				runCommand(sess, trimmed)
				continue
			}
		}

		buff.WriteString(line)
		buff.WriteByte('\n')

		if processInput(sess, opers, buff.String()) {
			buff.Reset()
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(contPrompt)
		}
	}
}

// -----------------------------------------------------------------------------

// processInput parses and lowers one buffered input.  It returns false when
// the input ends in the middle of a production and should be extended with a
// continuation line instead of consumed.
func processInput(sess *lower.Session, opers *syntax.OperTable, input string) bool {
	p := syntax.NewParser(opers, "", replName, bufio.NewReader(strings.NewReader(input)))

	defs, err := p.Parse()
	if err != nil {
		if syntax.Incomplete(err) {
			return false
		}

		reportError(err)
		return true
	}

	for _, def := range defs {
		lowerDef(sess, def)
	}

	return true
}

// lowerDef lowers a single parsed definition and prints the resulting IR.
func lowerDef(sess *lower.Session, def ast.Def) {
	switch d := def.(type) {
	case *ast.FuncDef:
		f, err := sess.LowerFunction(d)
		if err != nil {
			// A verification failure hands back the broken function; drop it
			// from the session.
			if f != nil {
				sess.Discard(f)
			}

			reportError(err)
			return
		}

		fmt.Println(f.LLString())

		// Anonymous wrappers are discarded once printed; the next bare
		// expression reuses the name.
		if d.Anonymous() {
			sess.Discard(f)
		}
	case *ast.Extern:
		f, err := sess.DeclareExtern(d.Proto)
		if err != nil {
			reportError(err)
			return
		}

		fmt.Println(f.LLString())
	default:
		report.ICE("unknown definition node %T", def)
	}
}

// reportError reports a parse or lowering error against the REPL input.
func reportError(err error) {
	switch e := err.(type) {
	case *syntax.IncompleteError:
		report.ReportCompileError("", replName, e.Err.Span, "%s", e.Err.Message)
	case *report.SyntaxError:
		report.ReportCompileError("", replName, e.Span, "%s", e.Message)
	case *lower.Error:
		report.ReportCompileError("", replName, e.Span, "%s", e.Error())
	default:
		report.ReportStdError(replName, err)
	}
}

// -----------------------------------------------------------------------------

// runCommand executes a REPL command line beginning with `:`.
func runCommand(sess *lower.Session, line string) {
	switch line {
	case ":ir":
		fmt.Print(sess.Module().String())
	case ":help":
		fmt.Println(helpText())
	default:
		report.PrintErrorMessage("Repl", fmt.Sprintf("unknown command `%s`", line))
	}
}

// helpText returns the wrapped language summary printed by :help.
func helpText() string {
	const text = `brio is a tiny language in which every value is a double.

Definitions:
  def f(a, b) a + b;         define a function
  extern sin(x);             declare an external function
  def binary@ 6 (a, b) ...   define operator @ with precedence 6
  def unary! (v) ...         define the unary operator !

Expressions:
  if c then a else b         conditional; c is compared against 0
  for i = 1, i < n, 2 in e   loop; the step defaults to 1
  let a = 1, b in e          scoped bindings; inits default to 0
  a = 5                      assignment to a defined variable

A bare expression is lowered as an anonymous function and printed.

Commands:
  :help   show this help
  :ir     print the IR of the whole session

Press Ctrl-D to exit.`

	return indent.String(wordwrap.String(text, 72), 2)
}

// historyPath returns the path of the REPL history file, or an empty string
// to disable history.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".brio_history")
}
