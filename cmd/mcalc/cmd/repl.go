package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/mcalc/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the line-oriented calculator (default)",
	Long: `Reads one expression per line from stdin and prints the result.

Results go to stdout, errors to stderr. Blank lines are ignored.
exit, quit or q (or end of input) leaves; :help lists the commands.`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return repl.New(repl.Options{
		Session: a.session,
		Config:  a.config,
		Logger:  a.logger,
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	}).Run(cmd.Context())
}
