package main

import (
	"fmt"
	"os"

	"github.com/atinylittleshell/cmdcomplete/internal/core"
	"github.com/atinylittleshell/cmdcomplete/internal/styles"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

func main() {
	app := &application{version: BUILD_VERSION}
	defer app.close()

	if err := newRootCommand(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR("Error: "+err.Error()))
		if app.logger != nil {
			app.logger.Error("command failed", zap.Error(err))
		}
		app.close()
		os.Exit(1)
	}
}

func initializeLogger(level string, logFile string) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Logs only go to file so completion output on stdout stays clean
	// Use `tail -f ~/.cmdcomplete/cmdcomplete.log` to monitor logs in real-time
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		logFile,
	}
	loggerConfig.ErrorOutputPaths = []string{
		logFile,
	}

	return loggerConfig.Build()
}

func defaultLogFile() string {
	return core.LogFile()
}
