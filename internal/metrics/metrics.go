// Package metrics counts generated questions and validated answers with
// Prometheus collectors and can export them to a node-exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

const namespace = "mathcaptcha"

// Recorder implements problemgen.Observer and answer.Observer.
type Recorder struct {
	registry *prometheus.Registry

	generated     *prometheus.CounterVec
	fallbacks     prometheus.Counter
	unsatisfiable prometheus.Counter
	validations   *prometheus.CounterVec
}

var (
	_ problemgen.Observer = (*Recorder)(nil)
	_ answer.Observer     = (*Recorder)(nil)
)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_generated_total",
			Help:      "Questions returned by the generator, by operation.",
		}, []string{"operation"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_fallbacks_total",
			Help:      "Times the generator ran out of attempts and returned 1 + 1.",
		}),
		unsatisfiable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "constraints_unsatisfied_total",
			Help:      "Constrained generations that failed within the attempt budget.",
		}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_validated_total",
			Help:      "Validated answers, by mode and reason.",
		}, []string{"mode", "reason"}),
	}
	r.registry.MustRegister(r.generated, r.fallbacks, r.unsatisfiable, r.validations)
	return r
}

// Registry returns the registry holding the Recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) QuestionGenerated(op problemgen.Operation) {
	r.generated.WithLabelValues(op.DisplayName()).Inc()
}

func (r *Recorder) FallbackUsed(int) {
	r.fallbacks.Inc()
}

func (r *Recorder) ConstraintsUnsatisfied(int) {
	r.unsatisfiable.Inc()
}

func (r *Recorder) AnswerChecked(mode answer.Mode, reason answer.Reason) {
	r.validations.WithLabelValues(string(mode), string(reason)).Inc()
}

// WriteTextfile writes every metric to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
