package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/config"
	"github.com/abhisek/mathcaptcha/internal/logging"
	"github.com/abhisek/mathcaptcha/internal/metrics"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// env holds what every subcommand shares: flags, logger, configuration
// and the metrics recorder.
type env struct {
	configPath  string
	verbose     bool
	metricsFile string

	logger   *zap.Logger
	cfg      problemgen.Config
	recorder *metrics.Recorder
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "mathcaptcha",
		Short: "Arithmetic captcha questions and answer checking",
		Long: `mathcaptcha generates simple arithmetic questions and validates free-text
answers against them, either strictly (exact half-up decimal rounding) or
flexibly (numeric tolerance).`,
		SilenceUsage:       true,
		PersistentPreRunE:  e.setup,
		PersistentPostRunE: e.teardown,
	}

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "Path to a YAML or JSON config file (MATHCAPTCHA_* env vars override it)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&e.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	root.AddCommand(
		newGenerateCmd(e),
		newCheckCmd(e),
		newBatchCmd(e),
		newStatsCmd(e),
		newNormalizeCmd(),
		newConfigCmd(e),
		newQuizCmd(e),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd(&env{}).Execute()
}

func (e *env) setup(cmd *cobra.Command, _ []string) error {
	if e.logger == nil {
		logger, err := logging.New(e.verbose)
		if err != nil {
			return err
		}
		e.logger = logger
	}

	cfg, err := config.Load(e.configPath)
	if config.IsNotExist(err) {
		return fmt.Errorf("config file %q not found (check --config)", e.configPath)
	}
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.recorder = metrics.NewRecorder()

	e.logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config_file", e.configPath),
		zap.Int("division_precision", cfg.DivisionPrecision),
		zap.Int("range_min", cfg.NumberRange.Min),
		zap.Int("range_max", cfg.NumberRange.Max),
	)
	return nil
}

func (e *env) teardown(_ *cobra.Command, _ []string) error {
	defer logging.Sync(e.logger)

	if e.metricsFile == "" || e.recorder == nil {
		return nil
	}
	if err := e.recorder.WriteTextfile(e.metricsFile); err != nil {
		return err
	}
	e.logger.Debug("metrics written", zap.String("path", e.metricsFile))
	return nil
}

// generator builds a Generator over the loaded config, reporting to the
// metrics recorder and the logger.
func (e *env) generator(opts ...problemgen.Option) (*problemgen.Generator, error) {
	obs := problemgen.MultiObserver(e.recorder, logging.GeneratorObserver{Logger: e.logger})
	g, err := problemgen.New(e.cfg, append([]problemgen.Option{problemgen.WithObserver(obs)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	return g, nil
}

// validator builds a Validator over the loaded config.
func (e *env) validator() (*answer.Validator, error) {
	v, err := answer.New(e.cfg, answer.WithObserver(e.recorder))
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}
	return v, nil
}
