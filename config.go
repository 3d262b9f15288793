package textbase

import (
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// Configuration keys understood by ConfigFrom.
const (
	KeyHistoryLimit = "textbase.history.limit"
	KeyInternMaxLen = "textbase.intern.maxlen"
	KeyTraceLevel   = "textbase.tracelevel"
)

// Config holds the tunables of a document.
type Config struct {
	HistoryLimit int    // max number of changes kept for undo; 0 means unlimited
	InternMaxLen int    // texts up to this width are de-duplicated by an Interner
	TraceLevel   string // "Error", "Info" or "Debug"
}

// DefaultConfig returns the configuration used for keys not set by a client.
func DefaultConfig() Config {
	return Config{
		HistoryLimit: 500,
		InternMaxLen: 16,
		TraceLevel:   "Info",
	}
}

// ConfigFrom reads a Config from a schuko configuration. Keys not present
// keep their default values, as do negative numbers.
func ConfigFrom(conf schuko.Configuration) Config {
	c := DefaultConfig()
	if conf == nil {
		return c
	}
	if conf.IsSet(KeyHistoryLimit) {
		if n := conf.GetInt(KeyHistoryLimit); n >= 0 {
			c.HistoryLimit = n
		}
	}
	if conf.IsSet(KeyInternMaxLen) {
		if n := conf.GetInt(KeyInternMaxLen); n >= 0 {
			c.InternMaxLen = n
		}
	}
	if conf.IsSet(KeyTraceLevel) {
		c.TraceLevel = conf.GetString(KeyTraceLevel)
	}
	return c
}

// SetupTracing sets the trace level of the 'textbase' tracer from c.
func (c Config) SetupTracing() {
	tracer().SetTraceLevel(tracing.TraceLevelFromString(c.TraceLevel))
}
