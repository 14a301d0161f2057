// Package cmd is the top-level "driver" package for the Brio compiler: it
// contains the command-line interface, project file loading, and the build
// pipeline that carries source text through parsing and lowering to an LLVM
// module on disk.
package cmd

import (
	"fmt"
	"os"

	"brio/report"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brio",
	Short: "Brio is a compiler for a small expression language",
	Long: `Brio compiles a small expression language in which every value is a
64-bit float down to LLVM IR.

Getting started:
  brio build file.brio         Compile a source file to LLVM IR
  brio build dir               Compile the project described by dir/brio.toml
  brio repl                    Start an interactive REPL
  brio version                 Print the compiler version

Language overview:
  Functions are defined with def and declared with extern:
    def add(a, b) a + b;
    extern sin(x);
  Bare expressions at the top level are wrapped into anonymous functions.
  Control flow is expression-based: if c then a else b, for i = 0, i < 10
  in body, and let x = 1 in body all produce values.  New operators are
  defined with def binary and def unary:
    def binary| 5 (a, b) if a then 1 else if b then 1 else 0;
    def unary-(v) 0 - v;`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.brio.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
	rootCmd.PersistentFlags().StringP("log-level", "l", "verbose",
		`Control compiler output: "silent", "error", "warn", or "verbose".`)

	viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".brio" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".brio")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// The config file is optional; a missing one is not an error.
	_ = viper.ReadInConfig()

	applyColorMode(viper.GetString("color"))
	applyLogLevel(viper.GetString("log-level"))
}

// applyColorMode applies the named color mode to terminal output.
func applyColorMode(mode string) {
	switch mode {
	case "auto":
		// pterm already detects terminal support on its own.
	case "always":
		pterm.EnableColor()
	case "never":
		pterm.DisableColor()
	default:
		report.ReportFatal("unknown color mode `%s`", mode)
	}
}

// applyLogLevel initializes the global reporter with the named log level.
func applyLogLevel(name string) {
	switch name {
	case "silent":
		report.InitReporter(report.LogLevelSilent)
	case "error":
		report.InitReporter(report.LogLevelError)
	case "warn":
		report.InitReporter(report.LogLevelWarn)
	case "verbose":
		report.InitReporter(report.LogLevelVerbose)
	default:
		report.ReportFatal("unknown log level `%s`", name)
	}
}
