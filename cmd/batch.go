package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/config"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// batchEntry is one line of a batch file. Expected is optional; when
// absent it is computed from Question.
type batchEntry struct {
	Question string `json:"question"`
	Expected string `json:"expected,omitempty"`
	Answer   any    `json:"answer"`
}

func newBatchCmd(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Strictly validate a file of question/answer pairs",
		Long: `Validate every entry of a YAML or JSON file strictly and print one
record per entry, in file order. Each entry has a question expression,
an optional canonical expected answer and the submitted answer:

  - question: "87 / 13"
    expected: "6.69"
    answer: "6.69"
  - question: "25 * 4"
    answer: 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, e, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func runBatch(cmd *cobra.Command, e *env, path, output string) error {
	entries, err := readBatchFile(path)
	if err != nil {
		return err
	}

	pairs := make([]answer.Pair, 0, len(entries))
	for i, entry := range entries {
		q, err := e.batchQuestion(i, entry)
		if err != nil {
			return err
		}
		pairs = append(pairs, answer.Pair{Question: q, Answer: entry.Answer})
	}

	v, err := e.validator()
	if err != nil {
		return err
	}
	records := v.Batch(pairs)
	valid, total := answer.Summary(records)
	e.logger.Debug("batch validated", zap.String("file", path), zap.Int("valid", valid), zap.Int("total", total))

	return writeOutput(cmd.OutOrStdout(), output, records, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tQUESTION\tEXPECTED\tANSWER\tVALID")
		for _, r := range records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%v\t%t\n", r.Index+1, r.Expression, r.Expected, r.UserAnswer, r.Valid)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%d/%d valid\n", valid, total)
		return err
	})
}

// batchQuestion builds the question of entry i. A given expected answer
// wins over the computed one; a disagreement is logged.
func (e *env) batchQuestion(i int, entry batchEntry) (problemgen.Question, error) {
	expected := strings.TrimSpace(entry.Expected)
	precision := e.cfg.DivisionPrecision
	if expected != "" {
		precision = -1
	}

	q, err := problemgen.FromExpression(entry.Question, max(precision, 0))
	if err != nil {
		return problemgen.Question{}, fmt.Errorf("entry %d: %w", i+1, err)
	}
	if expected == "" {
		return q, nil
	}

	q.Answer = expected
	q.NumericAnswer, _ = strconv.ParseFloat(expected, 64)
	if err := problemgen.Check(&q, problemgen.CheckInput{Precision: precision}); err != nil {
		e.logger.Warn("expected answer disagrees with the expression",
			zap.Int("entry", i+1),
			zap.String("question", entry.Question),
			zap.String("expected", expected),
			zap.Error(err),
		)
	}
	return q, nil
}

func readBatchFile(path string) ([]batchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var entries []batchEntry
	switch config.FormatFromPath(path) {
	case config.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("parse batch file: %w", err)
		}
	default:
		var raw []yamlBatchEntry
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parse batch file: %w", err)
		}
		for _, r := range raw {
			answer, err := literal(&r.Answer)
			if err != nil {
				return nil, fmt.Errorf("parse batch file: %w", err)
			}
			entries = append(entries, batchEntry{Question: r.Question, Expected: r.Expected, Answer: answer})
		}
	}
	return entries, nil
}

// yamlBatchEntry holds the answer as a node so that scalars keep the text
// the user wrote: "15.0" must not come back as 15.
type yamlBatchEntry struct {
	Question string    `yaml:"question"`
	Expected string    `yaml:"expected"`
	Answer   yaml.Node `yaml:"answer"`
}

// literal returns the source text of a scalar node, nil for a missing or
// null answer, and the decoded value of anything else.
func literal(n *yaml.Node) (any, error) {
	switch {
	case n.Kind == 0, n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null":
		return nil, nil
	case n.Kind == yaml.ScalarNode:
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
