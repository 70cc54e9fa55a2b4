package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/app"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
	"github.com/abhisek/mathcaptcha/internal/session"
)

type quizFlags struct {
	count   int
	mode    string
	numeric bool
	seed    uint64
	plain   bool
}

func newQuizCmd(e *env) *cobra.Command {
	f := &quizFlags{}
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Answer a round of questions in the terminal",
		Long: `Start an interactive quiz. Each answer is checked as soon as it is
submitted and a summary is printed at the end. --plain reads answers line
by line from stdin instead of running the full-screen interface.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuiz(cmd, e, f)
		},
	}

	cmd.Flags().IntVarP(&f.count, "count", "n", 10, "Number of questions")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", string(answer.ModeStrict), "Validation mode: strict, flexible or feedback")
	cmd.Flags().BoolVar(&f.numeric, "numeric", false, "Only accept digits, '-' and '.' as input")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for reproducible questions (0 picks a random seed)")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "Line-based quiz on stdin/stdout")
	return cmd
}

func runQuiz(cmd *cobra.Command, e *env, f *quizFlags) error {
	mode, err := answer.ParseMode(f.mode)
	if err != nil {
		return err
	}
	if f.count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", f.count)
	}

	var opts []problemgen.Option
	if f.seed != 0 {
		opts = append(opts, problemgen.WithSeed(f.seed))
	}
	g, err := e.generator(opts...)
	if err != nil {
		return err
	}
	v, err := e.validator()
	if err != nil {
		return err
	}

	var sum *session.Summary
	if f.plain {
		state := session.NewState(uuid.NewString(), mode, g.GenerateN(f.count), time.Now())
		if err := playPlain(cmd.InOrStdin(), cmd.OutOrStdout(), state, v); err != nil {
			return err
		}
		sum = session.BuildSummary(state)
	} else {
		sum, err = app.Run(app.Options{
			Generator:   g,
			Validator:   v,
			Count:       f.count,
			Mode:        mode,
			NumericOnly: f.numeric,
		})
		if err != nil {
			return err
		}
	}

	e.logger.Info("quiz finished",
		zap.String("session_id", sum.ID),
		zap.Int("answered", sum.TotalAnswered),
		zap.Int("correct", sum.TotalCorrect),
		zap.Duration("duration", sum.Duration),
	)
	return printSummary(cmd.OutOrStdout(), sum)
}

// playPlain runs the quiz over line-oriented input. EOF ends the quiz
// early; an empty line counts as a wrong answer.
func playPlain(in io.Reader, out io.Writer, state *session.State, v *answer.Validator) error {
	scanner := bufio.NewScanner(in)
	total := len(state.Questions)

	for state.Phase == session.PhaseActive {
		q := state.Current()
		fmt.Fprintf(out, "-- Question %d/%d --\n%s = ? ", state.Index+1, total, q.Expression)

		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			state.End(time.Now())
			break
		}
		input := strings.TrimSpace(scanner.Text())
		res := v.Check(state.Mode, *q, input)
		state.Record(input, res, time.Now())

		if res.Valid {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Not quite. %s. Correct answer: %s\n", res.Reason, q.Answer)
		}
		fmt.Fprintln(out)
		state.Advance(time.Now())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, sum *session.Summary) error {
	_, err := fmt.Fprintf(w, "Score: %d/%d (%.0f%%) in %s, average difficulty %.1f\n",
		sum.TotalCorrect, sum.TotalQuestions, sum.Accuracy*100,
		sum.Duration.Round(time.Second), sum.AvgDifficulty)
	if err != nil {
		return err
	}
	for _, r := range sum.Operations {
		if _, err := fmt.Fprintf(w, "  %-14s %d/%d\n", r.Operation.DisplayName(), r.Correct, r.Attempted); err != nil {
			return err
		}
	}
	return nil
}
