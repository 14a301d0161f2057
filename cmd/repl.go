package cmd

import (
	"brio/repl"
	"brio/report"

	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Brio REPL",
	Long: `Start an interactive read-lower-print loop.

Definitions and expressions entered at the prompt are lowered immediately
and the generated LLVM IR is printed back.  Line editing and in-session
command history are supported via readline.  Use Ctrl-D to exit.

Example REPL session:
  brio> def square(x) x * x;
  define double @square(double %x) { ... }
  brio> square(5) + 1;
  define double @__anon_expr0() { ... }
  brio> :ir
  ...`,
	Run: func(cmd *cobra.Command, args []string) {
		defer report.CatchInternal()

		if err := repl.Run(); err != nil {
			report.ReportFatal("unable to start the repl: %s", err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
