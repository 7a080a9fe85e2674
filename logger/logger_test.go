package logger

import (
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter()
	f.WithColor = false

	entry := &logrus.Entry{
		Logger:  Default,
		Time:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "session started",
		Data: logrus.Fields{
			"scope": "session",
			"sid":   "abc",
			"peer":  "127.0.0.1:12345",
		},
	}
	out, err := f.Format(entry)
	assert.NoError(t, err)
	line := string(out)
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "[session]")
	assert.Contains(t, line, "[sid=abc]")
	assert.Contains(t, line, "session started")
	assert.Contains(t, line, "peer=127.0.0.1:12345")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestConfigure(t *testing.T) {
	t.Run("when level is valid", func(t *testing.T) {
		assert.NoError(t, Configure("warn", ""))
		assert.Equal(t, logrus.WarnLevel, Default.GetLevel())
		assert.NoError(t, Configure("trace", ""))
	})

	t.Run("when level is junk", func(t *testing.T) {
		assert.Error(t, Configure("loud", ""))
	})

	t.Run("when a log file is given", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dolls.log")
		assert.NoError(t, Configure("info", path))
		Default.Info("hello file")
		assert.NoError(t, Configure("trace", ""))
		Default.SetFormatter(NewTextFormatter())
	})
}
