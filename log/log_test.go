package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/sirupsen/logrus"
)

func capture(t *testing.T, level string, fn func()) string {
	var buf bytes.Buffer
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	SetOutput(&buf)
	previous := logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetLevel(previous)
		SetOutput(os.Stderr)
	})
	assert.Equal(t, SetLevel(level), nil)
	fn()
	return buf.String()
}

func TestLevels(t *testing.T) {
	cases := []struct {
		log   func(string, ...any)
		level string
		want  string
	}{
		{Debug, "debug", "level=debug msg=\"GET https://spire.bugout.dev/ping\""},
		{Info, "info", "level=info msg=\"GET https://spire.bugout.dev/ping\""},
		{Warn, "warn", "level=warning msg=\"GET https://spire.bugout.dev/ping\""},
		{Error, "error", "level=error msg=\"GET https://spire.bugout.dev/ping\""},
	}
	for _, c := range cases {
		out := capture(t, c.level, func() {
			c.log("GET %s", "https://spire.bugout.dev/ping")
		})
		assert.MatchRegex(t, out, c.want)
	}
}

func TestLevels_Filtered(t *testing.T) {
	out := capture(t, "warn", func() {
		Debug("[jobs] created %s", "42")
		Info("[jobs] created %s", "42")
	})
	assert.Equal(t, out, "")
}

func TestSetLevel(t *testing.T) {
	capture(t, "debug", func() {
		assert.Equal(t, IsDebug(), true)
		assert.Equal(t, SetLevel("info"), nil)
		assert.Equal(t, IsDebug(), false)

		// empty keeps the current level
		assert.Equal(t, SetLevel(""), nil)
		assert.Equal(t, logrus.GetLevel(), logrus.InfoLevel)

		assert.NotEqual(t, SetLevel("loud"), nil)
	})
}
