package problemgen

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/mathcaptcha/internal/decimal"
)

// Observer receives generation events, e.g. for metrics or logging.
type Observer interface {
	// QuestionGenerated is called once per returned question.
	QuestionGenerated(op Operation)

	// FallbackUsed is called when Generate exhausted its retry budget and
	// substituted the "1 + 1" question.
	FallbackUsed(attempts int)

	// ConstraintsUnsatisfied is called when GenerateWithConstraints fails.
	ConstraintsUnsatisfied(attempts int)
}

type nopObserver struct{}

func (nopObserver) QuestionGenerated(Operation) {}
func (nopObserver) FallbackUsed(int) {}
func (nopObserver) ConstraintsUnsatisfied(int) {}

// MultiObserver fans every event out to each non-nil observer in order.
func MultiObserver(observers ...Observer) Observer {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) QuestionGenerated(op Operation) {
	for _, o := range m {
		o.QuestionGenerated(op)
	}
}

func (m multiObserver) FallbackUsed(attempts int) {
	for _, o := range m {
		o.FallbackUsed(attempts)
	}
}

func (m multiObserver) ConstraintsUnsatisfied(attempts int) {
	for _, o := range m {
		o.ConstraintsUnsatisfied(attempts)
	}
}

// Generator produces arithmetic questions from a Config.
//
// A Generator is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
type Generator struct {
	cfg      Config
	rng      *rand.Rand
	observer Observer
	newID    func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. Useful for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed seeds a PCG source with seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithObserver registers an Observer for generation events.
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		if o != nil {
			g.observer = o
		}
	}
}

// New creates a Generator. It fails with a *ConfigError if cfg is invalid.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:      cfg.Clone(),
		observer: nopObserver{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = newRand()
	}
	return g, nil
}

// newRand returns a PCG source seeded from crypto/rand.
func newRand() *rand.Rand {
	var b [16]byte
	_, _ = crand.Read(b[:])
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

// Config returns a copy of the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg.Clone()
}

// SetConfig merges p into the configuration. An invalid result is
// rejected and the configuration is left unchanged.
func (g *Generator) SetConfig(p ConfigPatch) error {
	next := g.cfg.Apply(p)
	if err := next.Validate(); err != nil {
		return err
	}
	g.cfg = next
	return nil
}

// Generate returns a question at the configured division precision.
func (g *Generator) Generate() Question {
	return g.GenerateWithPrecision(g.cfg.DivisionPrecision)
}

// GenerateWithPrecision returns a question whose division answer has
// precision decimal places. A negative precision selects the configured
// one; a precision above MaxPrecision is clamped, so callers taking it
// from user input should check it with ValidatePrecision first.
//
// When no candidate satisfies the avoidance rules within MaxAttempts, the
// question "1 + 1" is returned and the Observer is told.
func (g *Generator) GenerateWithPrecision(precision int) Question {
	if precision < 0 {
		precision = g.cfg.DivisionPrecision
	}
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		if q, ok := g.candidate(precision); ok {
			g.observer.QuestionGenerated(q.Operation)
			return q
		}
	}

	g.observer.FallbackUsed(g.cfg.MaxAttempts)
	q := Build(1, 1, OpAdd, precision)
	q.ID = g.newID()
	g.observer.QuestionGenerated(q.Operation)
	return q
}

// GenerateN returns count questions. A count of zero or less yields an
// empty slice.
func (g *Generator) GenerateN(count int) []Question {
	return g.GenerateNWithPrecision(count, g.cfg.DivisionPrecision)
}

// GenerateNWithPrecision is GenerateN with an explicit division precision.
func (g *Generator) GenerateNWithPrecision(count, precision int) []Question {
	if count < 0 {
		count = 0
	}
	out := make([]Question, 0, count)
	for range count {
		out = append(out, g.GenerateWithPrecision(precision))
	}
	return out
}

// candidate draws one question. ok is false when the draw violates an
// avoidance rule and must be retried.
func (g *Generator) candidate(precision int) (q Question, ok bool) {
	a := g.randInt()
	b := g.randInt()
	op := g.cfg.Operations[g.rng.IntN(len(g.cfg.Operations))]

	if op == OpSubtract && g.cfg.AvoidNegativeResults && a < b {
		a, b = b, a
	}
	if op == OpDivide && b == 0 && g.cfg.AvoidDivisionByZero {
		return Question{}, false
	}

	q = Build(a, b, op, precision)
	if g.cfg.AvoidNegativeResults && q.NumericAnswer < 0 {
		return Question{}, false
	}
	q.ID = g.newID()
	return q, true
}

// randInt returns a uniform integer in the configured inclusive range.
func (g *Generator) randInt() int {
	r := g.cfg.NumberRange
	return r.Min + g.rng.IntN(r.Max-r.Min+1)
}

// Build constructs the question "a op b". Division answers are rounded
// half up to precision places (clamped to 0..MaxPrecision); other answers
// are exact integers as long as both operands are within MaxOperand.
// Build never assigns an ID.
func Build(a, b int, op Operation, precision int) Question {
	precision = min(max(precision, 0), MaxPrecision)

	q := Question{
		Expression: fmt.Sprintf("%d %s %d", a, op, b),
		Operation:  op,
		Operands:   [2]int{a, b},
	}

	if op == OpDivide {
		q.Answer = quotient(a, b, precision)
		q.NumericAnswer, _ = strconv.ParseFloat(q.Answer, 64)
		return q
	}

	var n int
	switch op {
	case OpAdd:
		n = a + b
	case OpSubtract:
		n = a - b
	case OpMultiply:
		n = a * b
	}
	q.Answer = strconv.Itoa(n)
	q.NumericAnswer = float64(n)
	return q
}

// quotient renders a/b rounded half away from zero to precision places.
// The division is exact, so ties such as 1/8 at two places round up to
// "0.13". A zero divisor yields "+Inf", "-Inf" or "NaN".
func quotient(a, b, precision int) string {
	if b == 0 {
		return strconv.FormatFloat(float64(a)/float64(b), 'f', precision, 64)
	}
	r := new(big.Rat).SetFrac64(int64(a), int64(b))
	return decimal.TrimNegativeZero(r.FloatString(precision))
}
