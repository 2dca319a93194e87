package tutor

// Config holds request defaults and limits for the tutor service.
type Config struct {
	// DefaultQuestionCount applies when a request names no count. Default: 5.
	DefaultQuestionCount int

	// MaxQuestionCount caps requested question counts. Default: 20.
	MaxQuestionCount int

	// DefaultTimeLimit in minutes. Default: 10.
	DefaultTimeLimit int

	// HistoryLimit caps history listings when the caller passes none.
	// Default: 100.
	HistoryLimit int
}

// DefaultConfig returns the standard tutor limits.
func DefaultConfig() Config {
	return Config{
		DefaultQuestionCount: 5,
		MaxQuestionCount:     20,
		DefaultTimeLimit:     10,
		HistoryLimit:         100,
	}
}

// withDefaults fills each unset limit from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DefaultQuestionCount < 1 {
		c.DefaultQuestionCount = def.DefaultQuestionCount
	}
	if c.MaxQuestionCount < 1 {
		c.MaxQuestionCount = def.MaxQuestionCount
	}
	if c.DefaultTimeLimit < 1 {
		c.DefaultTimeLimit = def.DefaultTimeLimit
	}
	if c.HistoryLimit < 1 {
		c.HistoryLimit = def.HistoryLimit
	}
	return c
}
