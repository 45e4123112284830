package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile = flag.String("log-file", "", "Write JSON logs to this file")
	flagOut     = flag.String("out", "", "Output directory for written files")
)

// ParseFlags parses command-line flags. Call this early in main().
// Arguments after the flags are available through Args.
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments: the command and its operands.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
}
