package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Fields map[string]any

var base = newBase()

var sensitiveKeys = map[string]struct{}{
	"nationalcode":   {},
	"national_code":  {},
	"channelkey":     {},
	"channel_key":    {},
	"channelkeyhash": {},
	"password":       {},
	"authorization":  {},
	"pin":            {},
}

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Configure sets the level ("debug", "info", "warn", "error") and the
// format ("json" or "text"). Unknown levels fall back to info.
func Configure(level, format string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	if strings.EqualFold(strings.TrimSpace(format), "text") {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	base.SetFormatter(&logrus.JSONFormatter{})
}

func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

func Info(message string, fields Fields) {
	entry(fields).Info(message)
}

func Warn(message string, fields Fields) {
	entry(fields).Warn(message)
}

func Error(message string, err error, fields Fields) {
	e := entry(fields)
	if err != nil {
		e = e.WithError(err)
	}
	e.Error(message)
}

func entry(fields Fields) *logrus.Entry {
	if len(fields) == 0 {
		return logrus.NewEntry(base)
	}

	out := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if isSensitiveKey(k) {
			out[k] = "******"
			continue
		}
		out[k] = sanitizeField(v)
	}
	return base.WithFields(out)
}

func sanitizeField(value any) any {
	switch value.(type) {
	case nil, string, bool, int, int32, int64, float64, error:
		return value
	}
	return SanitizePayload(value)
}

// SanitizePayload round-trips payload through JSON and masks sensitive keys
// at every depth.
func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
