package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SettingsComponent tags every entry written by the settings store.
const SettingsComponent = "settings"

// SetupLogger configures the standard logrus logger. Stdout carries command
// output, so all log entries go to stderr.
func SetupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}

// Component returns an entry tagged with a fixed component name.
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
