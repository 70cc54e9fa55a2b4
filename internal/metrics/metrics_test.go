package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

func TestRecorder_CountsGeneration(t *testing.T) {
	rec := NewRecorder()

	cfg := problemgen.DefaultConfig()
	cfg.Operations = []problemgen.Operation{problemgen.OpMultiply}
	g, err := problemgen.New(cfg, problemgen.WithSeed(5), problemgen.WithObserver(rec))
	require.NoError(t, err)

	g.GenerateN(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(rec.generated.WithLabelValues("multiplication")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.fallbacks))
}

func TestRecorder_CountsFallbackAndUnsatisfied(t *testing.T) {
	rec := NewRecorder()

	cfg := problemgen.DefaultConfig()
	cfg.NumberRange = problemgen.Range{Min: 0, Max: 0}
	cfg.Operations = []problemgen.Operation{problemgen.OpDivide}
	cfg.MaxAttempts = 2
	g, err := problemgen.New(cfg, problemgen.WithObserver(rec))
	require.NoError(t, err)

	g.Generate()
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.fallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.generated.WithLabelValues("addition")))

	maxResult := -1.0
	_, err = g.GenerateWithConstraints(problemgen.Constraints{
		Operations:  []problemgen.Operation{problemgen.OpAdd},
		NumberRange: &problemgen.Range{Min: 1, Max: 2},
		MaxResult:   &maxResult,
	})
	require.ErrorIs(t, err, problemgen.ErrUnsatisfiableConstraints)
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.unsatisfiable))
}

func TestRecorder_CountsValidations(t *testing.T) {
	rec := NewRecorder()
	v, err := answer.New(problemgen.DefaultConfig(), answer.WithObserver(rec))
	require.NoError(t, err)

	q := problemgen.Build(6, 7, problemgen.OpMultiply, 2)
	v.Strict(q, "42")
	v.Strict(q, "41")
	v.Flexible(q, "42.0")
	v.WithFeedback(q, "forty-two")

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.validations.WithLabelValues("strict", "Correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.validations.WithLabelValues("strict", "Incorrect value")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.validations.WithLabelValues("flexible", "Correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.validations.WithLabelValues("feedback", "Invalid numeric format")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	rec := NewRecorder()
	rec.QuestionGenerated(problemgen.OpDivide)
	rec.AnswerChecked(answer.ModeStrict, answer.ReasonCorrect)

	path := filepath.Join(t.TempDir(), "mathcaptcha.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `mathcaptcha_questions_generated_total{operation="division"} 1`), out)
	assert.True(t, strings.Contains(out, `mathcaptcha_answers_validated_total{mode="strict",reason="Correct"} 1`), out)
}

func TestRecorder_WriteTextfileError(t *testing.T) {
	err := NewRecorder().WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom"))
	assert.ErrorContains(t, err, "write metrics")
}
