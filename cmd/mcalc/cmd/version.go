package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mCalc v%s\n", version.App)
		fmt.Fprintf(out, "  Git Commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		for _, component := range []string{"evaluator", "history", "shell"} {
			fmt.Fprintf(out, "  %-11s %s\n", component+":", version.ComponentVersion(component))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = version.App
	rootCmd.SetVersionTemplate(version.String() + "\n")
}
