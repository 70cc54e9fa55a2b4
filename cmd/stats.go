package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

func newStatsCmd(e *env) *cobra.Command {
	var (
		output    string
		precision int
	)
	cmd := &cobra.Command{
		Use:   "stats A OP B | \"A OP B\"",
		Short: "Show operands, result and difficulty of a question",
		Example: `  mathcaptcha stats 25 x 4
  mathcaptcha stats "87 / 13"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("expected a quoted expression or A OP B, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := problemgen.ValidatePrecision(precision); err != nil {
				return fmt.Errorf("--precision: %w", err)
			}
			if precision < 0 {
				precision = e.cfg.DivisionPrecision
			}
			q, err := statsQuestion(args, precision)
			if err != nil {
				return err
			}
			s := problemgen.QuestionStats(q)

			return writeOutput(cmd.OutOrStdout(), output, s, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "question:    %s\noperands:    %d, %d\noperation:   %s\nresult:      %s\ndifficulty:  %d/10\ndecimals:    %t\n",
					q.Expression, s.Operands.Num1, s.Operands.Num2, s.Operation.DisplayName(),
					strconv.FormatFloat(s.Result, 'f', -1, 64), s.Difficulty, s.HasDecimals)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&precision, "precision", -1, "Division precision (default: from config)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

// statsQuestion builds the question from a single expression argument or
// from separate operand and operator arguments.
func statsQuestion(args []string, precision int) (problemgen.Question, error) {
	if len(args) == 1 {
		return problemgen.FromExpression(args[0], precision)
	}
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return problemgen.Question{}, fmt.Errorf("invalid left operand %q", args[0])
	}
	op, err := problemgen.ParseOperation(args[1])
	if err != nil {
		return problemgen.Question{}, err
	}
	b, err := strconv.Atoi(args[2])
	if err != nil {
		return problemgen.Question{}, fmt.Errorf("invalid right operand %q", args[2])
	}
	return problemgen.Build(a, b, op, precision), nil
}
