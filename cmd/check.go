package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

type checkFlags struct {
	question  string
	expected  string
	op        string
	answer    string
	mode      string
	precision int
	output    string
}

func newCheckCmd(e *env) *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate an answer against a question",
		Long: `Validate an answer against a question given either as an expression
(--question "87 / 13") or as a canonical answer (--expected 6.69 --op /).`,
		Example: `  mathcaptcha check --question "87 / 13" --answer 6.69
  mathcaptcha check --expected 5 --answer 5.0 --mode flexible`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, e, f)
		},
	}

	cmd.Flags().StringVarP(&f.question, "question", "q", "", "Arithmetic expression, e.g. \"87 / 13\"")
	cmd.Flags().StringVar(&f.expected, "expected", "", "Canonical expected answer, e.g. 6.69")
	cmd.Flags().StringVar(&f.op, "op", "+", "Operation of the question when using --expected")
	cmd.Flags().StringVarP(&f.answer, "answer", "a", "", "The submitted answer")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", string(answer.ModeStrict), "Validation mode: strict, flexible or feedback")
	cmd.Flags().IntVar(&f.precision, "precision", -1, "Division precision for --question (default: from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "Output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("answer")
	cmd.MarkFlagsMutuallyExclusive("question", "expected")
	cmd.MarkFlagsOneRequired("question", "expected")
	return cmd
}

func runCheck(cmd *cobra.Command, e *env, f *checkFlags) error {
	mode, err := answer.ParseMode(f.mode)
	if err != nil {
		return err
	}

	q, err := f.buildQuestion(e.cfg)
	if err != nil {
		return err
	}

	v, err := e.validator()
	if err != nil {
		return err
	}
	res := v.Check(mode, q, f.answer)

	return writeOutput(cmd.OutOrStdout(), f.output, res, func(w io.Writer) error {
		if res.Valid {
			_, err := fmt.Fprintln(w, res.Reason)
			return err
		}
		_, err := fmt.Fprintf(w, "%s (expected %s, got %q)\n", res.Reason, res.Expected, res.UserInput)
		return err
	})
}

func (f *checkFlags) buildQuestion(cfg problemgen.Config) (problemgen.Question, error) {
	if f.question != "" {
		if err := problemgen.ValidatePrecision(f.precision); err != nil {
			return problemgen.Question{}, fmt.Errorf("--precision: %w", err)
		}
		precision := f.precision
		if precision < 0 {
			precision = cfg.DivisionPrecision
		}
		q, err := problemgen.FromExpression(f.question, precision)
		if err != nil {
			return problemgen.Question{}, fmt.Errorf("--question: %w", err)
		}
		return q, nil
	}

	op, err := problemgen.ParseOperation(f.op)
	if err != nil {
		return problemgen.Question{}, fmt.Errorf("--op: %w", err)
	}
	return problemgen.Question{Answer: f.expected, Operation: op}, nil
}
