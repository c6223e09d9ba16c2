package config

import (
	"fmt"
	"sort"
	"strings"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// DecodingMode selects how file content is decoded before substitution.
type DecodingMode string

const (
	// DecodingPreserve matches on raw bytes; undecodable bytes pass through untouched.
	DecodingPreserve DecodingMode = "preserve"
	// DecodingLossy decodes as UTF-8, replacing ill-formed sequences.
	DecodingLossy DecodingMode = "lossy"
)

var logLevels = map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}

var logFormats = map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}

var decodingModes = map[string]DecodingMode{
	"preserve": DecodingPreserve,
	"bytes":    DecodingPreserve,
	"lossy":    DecodingLossy,
	"ignore":   DecodingLossy,
}

func ParseLogLevel(raw string) (LogLevel, error)         { return parseEnum("log level", logLevels, raw) }
func ParseLogFormat(raw string) (LogFormat, error)       { return parseEnum("log format", logFormats, raw) }
func ParseDecodingMode(raw string) (DecodingMode, error) { return parseEnum("decoding mode", decodingModes, raw) }

// parseEnum trims and lowercases raw before lookup.
func parseEnum[T ~string](name string, values map[string]T, raw string) (T, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if v, ok := values[key]; ok {
		return v, nil
	}
	valid := make([]string, 0, len(values))
	for k := range values {
		valid = append(valid, k)
	}
	sort.Strings(valid)
	var zero T
	return zero, fmt.Errorf("unknown %s %q (valid: %s)", name, raw, strings.Join(valid, ", "))
}
