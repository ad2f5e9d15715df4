package design

import (
	"encoding/json"
	"log"

	"github.com/kasuganosora/designstore/pkg/metamodel"
)

// Options configures a Design: a JSON-tagged struct tree with a
// functional-options wrapper layered on top.
type Options struct {
	// InitialSequence seeds the IdentityManager's monotonic counter so a
	// restored design continues allocating past ids it already used.
	InitialSequence uint64 `json:"initial_sequence"`
	// LogLevel is carried as config metadata; the design package itself
	// always logs at one level via its injected *log.Logger.
	LogLevel string `json:"log_level"`

	Logger  *log.Logger                 `json:"-"`
	Checker metamodel.ConstraintChecker `json:"-"`
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{LogLevel: "info"}
}

// WithLogger injects a logger; Design logs frame lifecycle events through
// it (create_frame, accept, discard, undo, redo, remove_frame).
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithConstraintChecker installs the ConstraintChecker Design.Validate and
// Design.CheckConstraints run against accepted frames.
func WithConstraintChecker(c metamodel.ConstraintChecker) Option {
	return func(o *Options) { o.Checker = c }
}

// WithInitialSequence seeds the IdentityManager's counter, e.g. when
// restoring a design from an external snapshot that already used ids up to
// some point (no durable storage is implemented by this module; this
// exists for embedding callers that roll their own).
func WithInitialSequence(n uint64) Option {
	return func(o *Options) { o.InitialSequence = n }
}

// MarshalJSON lets Options round-trip through a config file without
// carrying the runtime-only fields (Logger, Checker) across the
// boundary.
func (o Options) MarshalJSON() ([]byte, error) {
	type alias struct {
		InitialSequence uint64 `json:"initial_sequence"`
		LogLevel        string `json:"log_level"`
	}
	return json.Marshal(alias{InitialSequence: o.InitialSequence, LogLevel: o.LogLevel})
}
