package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mailsweep %s compiled with %s on %s/%s\n", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if appCommit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit %s built on %s by %s\n", appCommit, appDate, appBuiltBy)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
