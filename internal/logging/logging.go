// Package logging builds the zap logger used by the command line.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// New returns a production JSON logger, or a development console logger
// at debug level when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// Sync flushes buffered entries, ignoring the error stderr returns on
// some platforms.
func Sync(logger *zap.Logger) {
	_ = logger.Sync()
}

// GeneratorObserver logs the generation events worth a human's
// attention: the "1 + 1" fallback and unsatisfiable constraints.
type GeneratorObserver struct {
	Logger *zap.Logger
}

var _ problemgen.Observer = GeneratorObserver{}

func (o GeneratorObserver) QuestionGenerated(op problemgen.Operation) {
	o.Logger.Debug("question generated", zap.String("operation", string(op)))
}

func (o GeneratorObserver) FallbackUsed(attempts int) {
	o.Logger.Warn("generation constraints not met, substituted fallback question",
		zap.Int("attempts", attempts),
		zap.String("question", "1 + 1"),
	)
}

func (o GeneratorObserver) ConstraintsUnsatisfied(attempts int) {
	o.Logger.Warn("constrained generation failed", zap.Int("attempts", attempts))
}
