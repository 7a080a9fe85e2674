package logger

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"os"
)

// Default is the logger every package logs through. Components derive their
// own entries from it with the "scope" field.
var Default *logrus.Logger

func init() {
	Default = logrus.New()
	Default.SetLevel(logrus.TraceLevel)
	Default.SetFormatter(NewTextFormatter())
}

// Configure reapplies level and output on Default. level is a logrus level
// name ("trace" through "panic"); an empty filePath keeps stdout, anything
// else appends to that file with colors off.
func Configure(level, filePath string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	Default.SetLevel(lvl)

	if filePath == "" {
		Default.SetOutput(os.Stdout)
		return nil
	}
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	formatter := NewTextFormatter()
	formatter.WithColor = false
	Default.SetFormatter(formatter)
	Default.SetOutput(f)
	return nil
}
