package cmd

import (
	"fmt"

	"brio/common"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the Brio compiler version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("brio v%s\n", common.BrioVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
