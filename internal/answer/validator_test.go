package answer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

func question(answer string, op problemgen.Operation) problemgen.Question {
	return problemgen.Question{Expression: "a " + string(op) + " b", Answer: answer, Operation: op}
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(problemgen.DefaultConfig())
	require.NoError(t, err)
	return v
}

func TestStrict(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		op        problemgen.Operation
		input     any
		want      bool
	}{
		{"exact integer", "15", problemgen.OpAdd, "15", true},
		{"integer with whitespace", "15", problemgen.OpAdd, "  15 ", true},
		{"integer rejects decimal point", "5", problemgen.OpAdd, "5.0", false},
		{"integer rejects padded decimals", "5", problemgen.OpAdd, "5.00", false},
		{"integer mismatch", "5", problemgen.OpAdd, "6", false},
		{"integer rejects leading zero", "7", problemgen.OpAdd, "007", false},
		{"negative integer", "-3", problemgen.OpSubtract, "-3", true},
		{"round down at .334", "1.33", problemgen.OpDivide, "1.334", true},
		{"round up at .335", "1.33", problemgen.OpDivide, "1.335", false},
		{"round up matches", "1.34", problemgen.OpDivide, "1.335", true},
		{"shorter decimal padded", "2.50", problemgen.OpDivide, "2.5", true},
		{"integer input padded", "4.00", problemgen.OpDivide, "4", true},
		{"carry into integer", "10.00", problemgen.OpDivide, "9.995", true},
		{"negative decimal exact", "-2.50", problemgen.OpDivide, "-2.50", false},
		{"negative decimal short", "-2.5", problemgen.OpDivide, "-2.5", false},
		{"negative decimal against canonical", "-2.50", problemgen.OpDivide, "-2.5", false},
		{"negative integer input for decimal", "-3.00", problemgen.OpDivide, "-3", true},
		{"zero accepts minus zero", "0.00", problemgen.OpDivide, "-0", true},
		{"zero rejects minus decimal zero", "0.00", problemgen.OpDivide, "-0.00", false},
		{"integer zero accepts minus zero", "0", problemgen.OpSubtract, "-0", true},
		{"large exact", "10000000000000000", problemgen.OpMultiply, "10000000000000000", true},
		{"large with fraction", "10000000000000000", problemgen.OpMultiply, "10000000000000000.1", false},
		{"large off by one", "10000000000000000", problemgen.OpMultiply, "10000000000000001", false},
		{"numeric int input", "15", problemgen.OpAdd, 15, true},
		{"numeric float input", "15", problemgen.OpAdd, 15.0, true},
		{"numeric float for decimal", "3.33", problemgen.OpDivide, 3.333, true},
		{"json number", "42", problemgen.OpMultiply, json.Number("42"), true},
	}

	v := newValidator(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := question(tc.canonical, tc.op)
			assert.Equal(t, tc.want, v.Strict(q, tc.input))
			assert.Equal(t, tc.want, v.Validate(q, tc.input))
			assert.Equal(t, tc.want, v.CheckIfSolvedCorrectly(q, tc.input))
		})
	}
}

func TestMalformedInputRejected(t *testing.T) {
	inputs := []any{"3.1.4", "4,14", "--5", "   ", "", nil, "+5", "1e3", "abc", ".5", "5.", true, struct{}{}}
	v := newValidator(t)
	q := question("4", problemgen.OpAdd)
	for _, in := range inputs {
		assert.False(t, v.Strict(q, in), "strict accepted %#v", in)
		assert.False(t, v.Flexible(q, in), "flexible accepted %#v", in)
		assert.Equal(t, ReasonInvalidFormat, v.WithFeedback(q, in).Reason, "input %#v", in)
	}
}

func TestFlexible(t *testing.T) {
	v := newValidator(t)

	integer := problemgen.Question{Expression: "2 + 2", Answer: "4", NumericAnswer: 4, Operation: problemgen.OpAdd}
	for _, in := range []string{"4", "4.0", "4.00", "4.000", " 4 "} {
		assert.True(t, v.Flexible(integer, in), "expected %q to be accepted", in)
	}
	assert.False(t, v.Flexible(integer, "4.01"))
	assert.False(t, v.Flexible(integer, "-4"))

	sum := problemgen.Question{Expression: "0.1 + 0.2", Answer: "0.3", Operation: problemgen.OpAdd}
	assert.True(t, v.Flexible(sum, "0.30000000000000004"))

	div := problemgen.Question{Expression: "5 / 2", Answer: "2.50", NumericAnswer: 2.5, Operation: problemgen.OpDivide}
	assert.True(t, v.Flexible(div, "2.5"))
	assert.True(t, v.Flexible(div, "2.500001"))
	assert.False(t, v.Flexible(div, "2.49"))
	assert.False(t, v.Flexible(div, "2.51"))

	negative := problemgen.Question{Expression: "-5 / 2", Answer: "-2.50", Operation: problemgen.OpDivide}
	assert.True(t, v.Flexible(negative, "-2.5"), "flexible mode has no negative-decimal rule")
}

func TestFlexible_UsesConfiguredTolerance(t *testing.T) {
	cfg := problemgen.DefaultConfig()
	cfg.Tolerance = 0.5
	v, err := New(cfg)
	require.NoError(t, err)

	q := problemgen.Question{Expression: "3 + 4", Answer: "7", Operation: problemgen.OpAdd}
	assert.True(t, v.Flexible(q, "7.4"))
	assert.False(t, v.Flexible(q, "7.6"))
}

func TestWithFeedback(t *testing.T) {
	v := newValidator(t)
	q := problemgen.Question{Expression: "87 / 13", Answer: "6.69", Operation: problemgen.OpDivide}

	t.Run("correct", func(t *testing.T) {
		res := v.WithFeedback(q, " 6.69 ")
		assert.True(t, res.Valid)
		assert.Equal(t, ReasonCorrect, res.Reason)
		assert.Equal(t, "6.69", res.UserInput)
		assert.Equal(t, "6.69", res.Expected)
		require.NotNil(t, res.UserNumber)
		require.NotNil(t, res.ExpectedNumber)
		assert.Equal(t, 6.69, *res.UserNumber)
		assert.Equal(t, 6.69, *res.ExpectedNumber)
	})

	t.Run("incorrect", func(t *testing.T) {
		res := v.WithFeedback(q, "6.7")
		assert.False(t, res.Valid)
		assert.Equal(t, ReasonIncorrect, res.Reason)
		assert.NotNil(t, res.UserNumber)
	})

	t.Run("invalid format", func(t *testing.T) {
		res := v.WithFeedback(q, "six")
		assert.False(t, res.Valid)
		assert.Equal(t, ReasonInvalidFormat, res.Reason)
		assert.Equal(t, "six", res.UserInput)
		assert.Equal(t, "6.69", res.Expected)
		assert.Nil(t, res.UserNumber)
		assert.Nil(t, res.ExpectedNumber)
	})

	t.Run("user not finite", func(t *testing.T) {
		res := v.WithFeedback(q, strings.Repeat("9", 400))
		assert.Equal(t, ReasonUserNotFinite, res.Reason)
		assert.Nil(t, res.UserNumber)
	})

	t.Run("expected not finite", func(t *testing.T) {
		inf := problemgen.Build(1, 0, problemgen.OpDivide, 2)
		res := v.WithFeedback(inf, "1")
		assert.Equal(t, ReasonExpectedNotFinite, res.Reason)
		assert.Equal(t, "+Inf", res.Expected)
		assert.Nil(t, res.ExpectedNumber)
	})
}

func TestCheck_DispatchesOnMode(t *testing.T) {
	v := newValidator(t)
	q := problemgen.Question{Expression: "2 + 3", Answer: "5", Operation: problemgen.OpAdd}

	strict := v.Check(ModeStrict, q, "5.0")
	assert.False(t, strict.Valid)
	assert.Equal(t, ReasonIncorrect, strict.Reason)
	assert.Equal(t, "5.0", strict.UserInput)

	flexible := v.Check(ModeFlexible, q, "5.0")
	assert.True(t, flexible.Valid)
	assert.Equal(t, ReasonCorrect, flexible.Reason)
}

func TestStrict_ExactQuotientOfBuiltQuestion(t *testing.T) {
	tests := []struct {
		a, b  int
		exact string
		want  string
	}{
		{1, 8, "0.125", "0.13"},
		{5, 8, "0.625", "0.63"},
		{5, 40, "0.125", "0.13"},
		{201, 200, "1.005", "1.01"},
		{87, 13, "6.6923", "6.69"},
	}

	v := newValidator(t)
	for _, tc := range tests {
		q := problemgen.Build(tc.a, tc.b, problemgen.OpDivide, 2)
		require.Equal(t, tc.want, q.Answer, q.Expression)
		assert.True(t, v.Strict(q, tc.exact), "strict rejected %s for %s", tc.exact, q.Expression)
		assert.True(t, v.Strict(q, tc.want), "strict rejected canonical %s for %s", tc.want, q.Expression)
	}
}

func TestGeneratedQuestionsValidateAgainstThemselves(t *testing.T) {
	cfg := problemgen.DefaultConfig()
	g, err := problemgen.New(cfg, problemgen.WithSeed(11))
	require.NoError(t, err)
	v := newValidator(t)

	for _, precision := range []int{0, 2, 5} {
		for _, q := range g.GenerateNWithPrecision(200, precision) {
			assert.True(t, v.Strict(q, q.Answer), "strict rejected own answer of %q (%s)", q.Expression, q.Answer)
			assert.True(t, v.Flexible(q, q.Answer), "flexible rejected own answer of %q (%s)", q.Expression, q.Answer)
			assert.True(t, v.Strict(q, q.NumericAnswer) || q.Operation == problemgen.OpDivide,
				"strict rejected numeric answer of %q", q.Expression)
		}
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := problemgen.DefaultConfig()
	cfg.Tolerance = -1
	_, err := New(cfg)
	assert.ErrorIs(t, err, problemgen.ErrInvalidConfig)
}

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) AnswerChecked(mode Mode, reason Reason) {
	r.events = append(r.events, string(mode)+":"+string(reason))
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	v, err := New(problemgen.DefaultConfig(), WithObserver(obs))
	require.NoError(t, err)

	q := problemgen.Question{Expression: "2 + 3", Answer: "5", Operation: problemgen.OpAdd}
	v.Strict(q, "5")
	v.Flexible(q, "x")
	v.WithFeedback(q, "6")

	assert.Equal(t, []string{
		"strict:Correct",
		"flexible:Invalid numeric format",
		"feedback:Incorrect value",
	}, obs.events)
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"strict", "flexible", "feedback"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), m)
	}
	_, err := ParseMode("lenient")
	assert.Error(t, err)
}
