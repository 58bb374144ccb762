package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/mcalc/foundation/core/error"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expr>...",
	Short: "Evaluate expressions given as arguments",
	Long: `Evaluates each argument as one line, in order, in a single session,
so assignments are visible to later arguments:

  mcalc eval "x = 4" "x * x"

Exits with a non-zero status if any expression fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	errText := color.New(color.FgRed)
	if !a.config.REPL.Color {
		errText.DisableColor()
	}

	failed := 0
	for _, expr := range args {
		outcome := a.session.Evaluate(cmd.Context(), expr)
		if outcome.Failed() {
			failed++
			errText.Fprintln(cmd.ErrOrStderr(), outcome.Err.Error())
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), outcome.Value)
	}

	if failed > 0 {
		return mdwerror.Newf("%d of %d expressions failed", failed, len(args)).
			WithCode(mdwerror.CodeInvalidInput)
	}
	return nil
}
