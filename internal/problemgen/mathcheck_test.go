package problemgen

import "testing"

func TestMathCheck_Addition(t *testing.T) {
	v := &MathCheckValidator{}

	q := validQuestion()
	if err := v.Validate(q, CheckInput{Precision: 2}); err != nil {
		t.Fatalf("correct addition should pass: %v", err)
	}

	q.Answer = "612"
	if err := v.Validate(q, CheckInput{Precision: 2}); err == nil {
		t.Fatal("wrong addition should fail")
	}
}

func TestMathCheck_Subtraction(t *testing.T) {
	v := &MathCheckValidator{}

	q := &Question{Expression: "567 - 289", Answer: "278", Operation: OpSubtract, Operands: [2]int{567, 289}}
	if err := v.Validate(q, CheckInput{Precision: 2}); err != nil {
		t.Fatalf("correct subtraction should pass: %v", err)
	}

	q.Answer = "288"
	if err := v.Validate(q, CheckInput{Precision: 2}); err == nil {
		t.Fatal("wrong subtraction should fail")
	}
}

func TestMathCheck_Division(t *testing.T) {
	v := &MathCheckValidator{}

	q := &Question{Expression: "10 / 3", Answer: "3.33", Operation: OpDivide, Operands: [2]int{10, 3}}
	if err := v.Validate(q, CheckInput{Precision: 2}); err != nil {
		t.Fatalf("correct division should pass: %v", err)
	}

	// Precision inferred from the answer.
	q.Answer = "3.333"
	if err := v.Validate(q, CheckInput{Precision: -1}); err != nil {
		t.Fatalf("3-place division should pass with inferred precision: %v", err)
	}

	q.Answer = "3.34"
	if err := v.Validate(q, CheckInput{Precision: 2}); err == nil {
		t.Fatal("wrong division should fail")
	}
}

func TestMathCheck_OperandMismatch(t *testing.T) {
	v := &MathCheckValidator{}

	q := validQuestion()
	q.Operands = [2]int{1, 2}
	if err := v.Validate(q, CheckInput{Precision: 2}); err == nil {
		t.Fatal("operands disagreeing with the expression should fail")
	}
}

func TestMathCheck_NotAnExpression(t *testing.T) {
	v := &MathCheckValidator{}

	q := validQuestion()
	q.Expression = "What is the capital of France?"
	if err := v.Validate(q, CheckInput{Precision: 2}); err == nil {
		t.Fatal("non-arithmetic text should fail")
	}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		text string
		a, b int
		op   Operation
	}{
		{"87 / 13", 87, 13, OpDivide},
		{"12 × 3 = ?", 12, 3, OpMultiply},
		{"8÷2", 8, 2, OpDivide},
		{"-4 - -9", -4, -9, OpSubtract},
		{"  5+5 ", 5, 5, OpAdd},
		{"25 * 4 =", 25, 4, OpMultiply},
	}

	for _, tc := range tests {
		a, b, op, err := ParseExpression(tc.text)
		if err != nil {
			t.Errorf("ParseExpression(%q) error: %v", tc.text, err)
			continue
		}
		if a != tc.a || b != tc.b || op != tc.op {
			t.Errorf("ParseExpression(%q) = %d %s %d, want %d %s %d", tc.text, a, op, b, tc.a, tc.op, tc.b)
		}
	}

	for _, bad := range []string{"", "1e16 + 0", "2 ^ 3", "1 + 2 + 3", "abc", "5000000000 * 5000000000", "-1000000001 + 1", "-9223372036854775808 + 1"} {
		if _, _, _, err := ParseExpression(bad); err == nil {
			t.Errorf("ParseExpression(%q): expected error", bad)
		}
	}
}

func TestFromExpression(t *testing.T) {
	q, err := FromExpression("10 / 7", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Answer != "1.43" {
		t.Errorf("expected 1.43, got %q", q.Answer)
	}
	if q.Operation != OpDivide {
		t.Errorf("expected division, got %q", q.Operation)
	}
}
