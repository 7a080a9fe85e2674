// Package logger carries the shared logrus logger and its console
// formatter.
package logger

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"sort"
	"strings"
)

type TextFormatter struct {
	WithColor  bool
	TimeFormat string
}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		WithColor:  true,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

func (f *TextFormatter) formatLevel(level logrus.Level) string {
	levelTxt := fmt.Sprintf("%-7s", strings.ToUpper(level.String())) // align level
	if f.WithColor {
		// @see https://en.wikipedia.org/wiki/ANSI_escape_code for colors code
		var levelColor int
		switch level {
		case logrus.DebugLevel, logrus.TraceLevel:
			levelColor = 37 // gray
		case logrus.WarnLevel:
			levelColor = 33 // yellow
		case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
			levelColor = 31 // red
		default:
			levelColor = 34 // blue
		}
		levelTxt = fmt.Sprintf("[%dm%s", levelColor, levelTxt)
	}
	return levelTxt
}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var msg string
	// format level
	msg += f.formatLevel(entry.Level)
	// format timestamp
	msg += fmt.Sprintf(" [%s]", entry.Time.Format(f.TimeFormat))
	// format scope and session id
	if scope, _ := entry.Data["scope"].(string); scope != "" {
		msg += fmt.Sprintf(" [%s]", scope)
	}
	if sid, _ := entry.Data["sid"].(string); sid != "" {
		msg += fmt.Sprintf(" [sid=%s]", sid)
	}
	// append message
	if entry.Message != "" {
		msg += fmt.Sprintf(" %s", entry.Message)
	}
	// append the remaining fields as key=value
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == "scope" || k == "sid" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msg += fmt.Sprintf(" %s=%v", k, entry.Data[k])
	}
	if f.WithColor {
		msg += "[0m"
	}
	// end the message with \n
	msg += "\n"
	return []byte(msg), nil
}
