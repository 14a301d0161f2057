package cmd

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"brio/ast"
	"brio/common"
	"brio/lower"
	"brio/report"
	"brio/syntax"
	"brio/verify"

	"github.com/spf13/cobra"
)

var outputPath string

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Compile a source file or project to LLVM IR",
	Long: `Compile a Brio source file, or a project directory containing a
brio.toml project file, down to a textual LLVM module.

The path defaults to the current directory.  For a project the output
path is taken from the project file; for a single source file it is the
source path with a .ll extension.  Both may be overridden with -o.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defer report.CatchInternal()

		path := "."
		if len(args) == 1 {
			path = args[0]
		}

		Build(path, outputPath)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&outputPath, "out", "o", "",
		"Path to write the generated LLVM module to")
}

// Build compiles the source file or project directory at `path` and writes
// the resulting LLVM module to `outPath`.  If `outPath` is empty, the output
// location is derived from the input.
func Build(path, outPath string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		report.ReportFatal("unable to resolve path `%s`: %s", path, err.Error())
	}

	finfo, err := os.Stat(absPath)
	if err != nil {
		report.ReportFatal("unable to load input path `%s`: %s", path, err.Error())
	}

	// Directories are compiled through their project file.
	var proj *Project
	if finfo.IsDir() {
		proj = LoadProject(absPath)
	} else {
		if filepath.Ext(absPath) != common.BrioFileExt {
			report.ReportFatal("`%s` is not a brio source file", path)
		}

		base := strings.TrimSuffix(filepath.Base(absPath), common.BrioFileExt)
		proj = &Project{
			Name:       base,
			EntryPath:  absPath,
			OutputPath: filepath.Join(filepath.Dir(absPath), base+common.BrioOutputExt),
		}
	}

	if outPath != "" {
		proj.OutputPath = outPath
	}

	compileProject(proj)
}

// compileProject runs the compilation pipeline for a loaded project: it
// parses the entry file, lowers every definition into one session, and
// writes the session's module to the project's output path.  Definitions
// that fail to lower are reported and skipped so that one bad function does
// not hide errors in the rest of the file.
func compileProject(proj *Project) {
	reprPath := displayPath(proj.EntryPath)
	report.ReportCompileHeader(reprPath)

	f, err := os.Open(proj.EntryPath)
	if err != nil {
		report.ReportFatal("unable to open source file `%s`: %s", proj.EntryPath, err.Error())
	}
	defer f.Close()

	sess := lower.NewSession(lower.WithSourceName(reprPath))

	p := syntax.NewParser(syntax.NewOperTable(), proj.EntryPath, reprPath, bufio.NewReader(f))
	defs, err := p.Parse()
	if err != nil {
		reportBuildError(proj.EntryPath, reprPath, err)
	}

	for _, def := range defs {
		lowerBuildDef(sess, proj.EntryPath, reprPath, def)
	}

	if report.ShouldProceed() {
		// Functions verify individually as they lower; this catches anything
		// module-level before the output is written.
		if err := verify.Module(sess.Module()); err != nil {
			report.ICE("emitting a malformed module: %s", err)
		}

		writeOutputFile(proj.OutputPath, sess.Module().String())
	}

	report.ReportCompilationFinished(displayPath(proj.OutputPath))
}

// lowerBuildDef lowers a single parsed definition into the session.
func lowerBuildDef(sess *lower.Session, absPath, reprPath string, def ast.Def) {
	switch d := def.(type) {
	case *ast.FuncDef:
		f, err := sess.LowerFunction(d)
		if err != nil {
			// A verification failure hands back the broken function; drop it
			// so the emitted module stays well formed.
			if f != nil {
				sess.Discard(f)
			}

			reportBuildError(absPath, reprPath, err)
		}
	case *ast.Extern:
		if _, err := sess.DeclareExtern(d.Proto); err != nil {
			reportBuildError(absPath, reprPath, err)
		}
	default:
		report.ICE("unknown definition node %T", def)
	}
}

// reportBuildError reports an error produced while compiling a source file.
func reportBuildError(absPath, reprPath string, err error) {
	switch e := err.(type) {
	case *syntax.IncompleteError:
		report.ReportCompileError(absPath, reprPath, e.Err.Span, "%s", e.Err.Message)
	case *report.SyntaxError:
		report.ReportCompileError(absPath, reprPath, e.Span, "%s", e.Message)
	case *lower.Error:
		report.ReportCompileError(absPath, reprPath, e.Span, "%s", e.Error())
	default:
		report.ReportStdError(reprPath, err)
	}
}

// writeOutputFile is used to quickly write an output file for the compiler.
func writeOutputFile(fpath, content string) {
	// open or create the file
	file, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		report.ReportFatal("failed to open output file `%s`: %s", fpath, err.Error())
	}
	defer file.Close()

	// write the data
	_, err = file.WriteString(content)
	if err != nil {
		report.ReportFatal("failed to write output to file `%s`: %s", fpath, err.Error())
	}
}

// displayPath shortens an absolute path to one relative to the working
// directory for display in compiler messages.  It falls back to the absolute
// path whenever a sensible relative form does not exist.
func displayPath(abspath string) string {
	wd, err := os.Getwd()
	if err != nil {
		return abspath
	}

	rel, err := filepath.Rel(wd, abspath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abspath
	}

	return rel
}
