package debug

import (
	"log/slog"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
)

type debug struct {
	Parse  bool
	Decode bool
	Encode bool
	Schema bool
}

var (
	d      *debug
	logger *slog.Logger
)

func init() {
	d = &debug{}
	d.Parse = boolEnv("XM_DEBUG_PARSE")
	d.Decode = boolEnv("XM_DEBUG_DECODE")
	d.Encode = boolEnv("XM_DEBUG_ENCODE")
	d.Schema = boolEnv("XM_DEBUG_SCHEMA")
	if d.Parse || d.Decode || d.Encode || d.Schema {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.DiscardHandler)
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Schema() bool {
	return d.Schema
}

// Log is the debug logger. It discards everything unless one of the
// XM_DEBUG_* variables is set.
func Log() *slog.Logger {
	return logger
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		logger.Debug("value", "v", v)
		return
	}
	os.Stderr.Write(d)
}
