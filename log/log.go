package log

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// log.Debug("POST %s -> %d", url, status)

func Debug(format string, args ...any) {
	log.Debugf(format, args...)
}

func Info(format string, args ...any) {
	log.Infof(format, args...)
}

func Warn(format string, args ...any) {
	log.Warnf(format, args...)
}

func Error(format string, args ...any) {
	log.Errorf(format, args...)
}

func Fatal(format string, args ...any) {
	log.Fatalf(format, args...)
}

// SetLevel accepts logrus level names ("debug", "info", "warn", ...).
// An empty value leaves the current level untouched.
func SetLevel(level string) error {
	level = strings.TrimSpace(level)
	if level == "" {
		return nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(parsed)
	return nil
}

func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func IsDebug() bool {
	return log.IsLevelEnabled(log.DebugLevel)
}
