package problemgen

import "testing"

func TestQuestionStats_Multiplication(t *testing.T) {
	q := Question{
		Expression:    "25 * 4",
		Answer:        "100",
		NumericAnswer: 100,
		Operation:     OpMultiply,
		Operands:      [2]int{25, 4},
	}

	s := QuestionStats(q)
	if s.Operands != (Operands{Num1: 25, Num2: 4}) {
		t.Errorf("unexpected operands: %+v", s.Operands)
	}
	if s.Result != 100 {
		t.Errorf("expected result 100, got %v", s.Result)
	}
	if s.Operation != OpMultiply {
		t.Errorf("expected *, got %q", s.Operation)
	}
	if s.Difficulty != 4 {
		t.Errorf("expected difficulty 4, got %d", s.Difficulty)
	}
	if s.HasDecimals {
		t.Error("expected no decimals")
	}
}

func TestQuestionStats_DecimalResult(t *testing.T) {
	q := Question{Expression: "10 / 3", Answer: "3.33", NumericAnswer: 3.33, Operation: OpDivide, Operands: [2]int{10, 3}}
	if !QuestionStats(q).HasDecimals {
		t.Error("expected 3.33 to have decimals")
	}

	whole := Question{Expression: "8 / 2", Answer: "4.00", NumericAnswer: 4, Operation: OpDivide, Operands: [2]int{8, 2}}
	if QuestionStats(whole).HasDecimals {
		t.Error("expected 4.00 to have no fractional part")
	}
}

func TestQuestionStats_DifficultyOrdering(t *testing.T) {
	easy := Question{Expression: "2 + 3", Answer: "5", NumericAnswer: 5, Operation: OpAdd, Operands: [2]int{2, 3}}
	hard := Question{Expression: "87 / 13", Answer: "6.69", NumericAnswer: 6.69, Operation: OpDivide, Operands: [2]int{87, 13}}

	e, h := QuestionStats(easy).Difficulty, QuestionStats(hard).Difficulty
	if e != 1 {
		t.Errorf("expected easy difficulty 1, got %d", e)
	}
	if h != 8 {
		t.Errorf("expected hard difficulty 8, got %d", h)
	}
	if h <= e {
		t.Errorf("expected hard (%d) > easy (%d)", h, e)
	}
}

func TestQuestionStats_DifficultyBounds(t *testing.T) {
	g, err := New(DefaultConfig(), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range g.GenerateN(300) {
		d := QuestionStats(q).Difficulty
		if d < 1 || d > 10 {
			t.Fatalf("difficulty %d out of range for %q", d, q.Expression)
		}
	}

	capped := Question{Expression: "999 / 7", Answer: "142.71", Operation: OpDivide, Operands: [2]int{9999, 7}}
	if d := QuestionStats(capped).Difficulty; d != 8 {
		t.Errorf("expected 8, got %d", d)
	}
	huge := Question{Expression: "9999 / 0.7", Answer: "14284.29", Operation: OpDivide, Operands: [2]int{9999, 7}}
	if d := QuestionStats(huge).Difficulty; d != 9 {
		t.Errorf("expected 9, got %d", d)
	}
}

func TestQuestionStats_ResultFallsBackToNumericAnswer(t *testing.T) {
	q := Question{Expression: "5 + 5", Answer: "", NumericAnswer: 10, Operation: OpAdd, Operands: [2]int{5, 5}}
	if r := QuestionStats(q).Result; r != 10 {
		t.Errorf("expected 10, got %v", r)
	}
}
