package logging

import (
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// Setup configures gologger based on the log level
func Setup(logLevel string) {
	gologger.DefaultLogger.SetMaxLevel(Level(logLevel))
	gologger.Debug().Msgf("Log level configured to: %s", logLevel)
}

// Level maps a configured level name onto gologger levels, defaulting to info.
func Level(logLevel string) levels.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return levels.LevelDebug
	case "info":
		return levels.LevelInfo
	case "warning", "warn":
		return levels.LevelWarning
	case "error":
		return levels.LevelError
	case "fatal":
		return levels.LevelFatal
	case "silent":
		return levels.LevelSilent
	default:
		return levels.LevelInfo
	}
}
