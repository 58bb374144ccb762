package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/internal/tui/calcshell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the full-screen calc shell",
	Long: `Starts the full-screen terminal UI.

Shortcuts:
  Enter       evaluate the line
  ↑/↓         recall earlier input
  PgUp/PgDn   scroll
  Ctrl+L      clear the scrollback
  Esc/Ctrl+C  quit`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return calcshell.Run(cmd.Context(), calcshell.Options{
		Session: a.session,
		Config:  a.config,
		Logger:  a.logger,
	})
}
