package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

type generateFlags struct {
	count     int
	precision int
	ops       []string
	min       int
	max       int
	minResult float64
	maxResult float64
	seed      uint64
	output    string
}

func newGenerateCmd(e *env) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate arithmetic questions",
		Long: `Generate arithmetic questions from the configured operand range and
operation set. Any of --ops, --min, --max, --min-result or --max-result
switches to constrained generation, which fails when no question within
the attempt budget satisfies the result bounds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, e, f)
		},
	}

	cmd.Flags().IntVarP(&f.count, "count", "n", 1, "Number of questions to generate")
	cmd.Flags().IntVar(&f.precision, "precision", -1, "Decimal places of division answers (default: from config)")
	cmd.Flags().StringSliceVar(&f.ops, "ops", nil, "Operations to draw from, e.g. +,- or add,div")
	cmd.Flags().IntVar(&f.min, "min", 0, "Smallest operand")
	cmd.Flags().IntVar(&f.max, "max", 0, "Largest operand")
	cmd.Flags().Float64Var(&f.minResult, "min-result", 0, "Smallest acceptable answer")
	cmd.Flags().Float64Var(&f.maxResult, "max-result", 0, "Largest acceptable answer")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for reproducible output (0 picks a random seed)")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func runGenerate(cmd *cobra.Command, e *env, f *generateFlags) error {
	if f.count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", f.count)
	}
	if err := problemgen.ValidatePrecision(f.precision); err != nil {
		return fmt.Errorf("--precision: %w", err)
	}

	var opts []problemgen.Option
	if f.seed != 0 {
		opts = append(opts, problemgen.WithSeed(f.seed))
	}
	g, err := e.generator(opts...)
	if err != nil {
		return err
	}

	constraints, constrained, err := f.constraints(cmd, e.cfg)
	if err != nil {
		return err
	}

	var questions []problemgen.Question
	if constrained {
		for range f.count {
			q, err := g.GenerateWithConstraints(constraints)
			if err != nil {
				return fmt.Errorf("generate question: %w", err)
			}
			questions = append(questions, q)
		}
	} else {
		questions = g.GenerateNWithPrecision(f.count, f.precision)
	}

	e.logger.Debug("questions generated", zap.Int("count", len(questions)), zap.Bool("constrained", constrained))

	return writeOutput(cmd.OutOrStdout(), f.output, questions, func(w io.Writer) error {
		for _, q := range questions {
			if _, err := fmt.Fprintf(w, "%s = %s\n", q.Expression, q.Answer); err != nil {
				return err
			}
		}
		return nil
	})
}

// constraints turns the changed flags into Constraints. constrained is
// false when no constraint flag was given.
func (f *generateFlags) constraints(cmd *cobra.Command, cfg problemgen.Config) (c problemgen.Constraints, constrained bool, err error) {
	flags := cmd.Flags()

	if flags.Changed("ops") {
		ops, err := problemgen.ParseOperations(f.ops)
		if err != nil {
			return c, false, fmt.Errorf("--ops: %w", err)
		}
		c.Operations = ops
		constrained = true
	}
	if flags.Changed("min") || flags.Changed("max") {
		r := cfg.NumberRange
		if flags.Changed("min") {
			r.Min = f.min
		}
		if flags.Changed("max") {
			r.Max = f.max
		}
		c.NumberRange = &r
		constrained = true
	}
	if flags.Changed("min-result") {
		c.MinResult = &f.minResult
		constrained = true
	}
	if flags.Changed("max-result") {
		c.MaxResult = &f.maxResult
		constrained = true
	}
	if f.precision >= 0 {
		c.Precision = &f.precision
	}
	return c, constrained, nil
}
