package problemgen

// defaultGenerator backs the package-level functions. Like any Generator
// it has no locking: concurrent SetConfig and Generate calls race.
var defaultGenerator = mustNew(DefaultConfig())

func mustNew(cfg Config) *Generator {
	g, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

// GetConfig returns a copy of the process-wide configuration. Mutating
// the copy has no effect; use SetConfig.
func GetConfig() Config {
	return defaultGenerator.Config()
}

// SetConfig merges p into the process-wide configuration.
func SetConfig(p ConfigPatch) error {
	return defaultGenerator.SetConfig(p)
}

// ResetConfig restores the process-wide configuration to DefaultConfig.
func ResetConfig() {
	defaultGenerator.cfg = DefaultConfig()
}

// Generate returns a question from the process-wide generator.
func Generate() Question {
	return defaultGenerator.Generate()
}

// GenerateWithPrecision returns a question from the process-wide
// generator with an explicit division precision.
func GenerateWithPrecision(precision int) Question {
	return defaultGenerator.GenerateWithPrecision(precision)
}

// GenerateN returns count questions from the process-wide generator.
func GenerateN(count int) []Question {
	return defaultGenerator.GenerateN(count)
}

// GenerateNWithPrecision returns count questions from the process-wide
// generator with an explicit division precision.
func GenerateNWithPrecision(count, precision int) []Question {
	return defaultGenerator.GenerateNWithPrecision(count, precision)
}

// GenerateWithConstraints runs a constrained generation on the
// process-wide generator.
func GenerateWithConstraints(c Constraints) (Question, error) {
	return defaultGenerator.GenerateWithConstraints(c)
}
