package config

const (
	defaultDataDir             = "~/.local/share/batchprint"
	defaultLogDir              = "~/.local/share/batchprint/logs"
	defaultLogFormat           = ""
	defaultLogLevel            = "info"
	defaultPollInterval        = 5
	defaultSettleDelayMS       = 1000
	defaultStabilityIntervalMS = 500
	defaultStabilityAttempts   = 3
	defaultPostSubmitPauseMS   = 2000
)

// Default returns a Config populated with repository defaults. The log format
// is left empty so the logging package can pick console or JSON based on the
// output terminal.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Workflow: Workflow{
			PollInterval:        defaultPollInterval,
			SettleDelayMS:       defaultSettleDelayMS,
			StabilityIntervalMS: defaultStabilityIntervalMS,
			StabilityAttempts:   defaultStabilityAttempts,
			PostSubmitPauseMS:   defaultPostSubmitPauseMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
