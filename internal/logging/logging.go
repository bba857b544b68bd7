// Package logging defines the logging contract shared by every service in
// the module. Providers supply named child loggers; a no-op implementation
// keeps services safe when logging is disabled.
package logging

import (
	"context"
	"maps"
)

// Logger is the minimal structured logging contract services depend on.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers. Implementations can return the same
// instance for every name or scope loggers per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to a logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

const (
	rootModule       = "churchsite"
	eventsModule     = "churchsite.events"
	sermonsModule    = "churchsite.sermons"
	speakersModule   = "churchsite.speakers"
	seriesModule     = "churchsite.series"
	ministriesModule = "churchsite.ministries"
	sourceModule     = "churchsite.source"
	navigationModule = "churchsite.navigation"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries filter predictably.
func ModuleLogger(provider LoggerProvider, module string) Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// EventsLogger returns the logger namespace reserved for the events service.
func EventsLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, eventsModule)
}

// SermonsLogger returns the logger namespace reserved for the sermons service.
func SermonsLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, sermonsModule)
}

// SpeakersLogger returns the logger namespace reserved for the speakers service.
func SpeakersLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, speakersModule)
}

// SeriesLogger returns the logger namespace reserved for the series service.
func SeriesLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, seriesModule)
}

// MinistriesLogger returns the logger namespace reserved for the ministries service.
func MinistriesLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, ministriesModule)
}

// SourceLogger returns the logger namespace reserved for content loading.
func SourceLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, sourceModule)
}

// NavigationLogger returns the logger namespace reserved for navigation building.
func NavigationLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, navigationModule)
}

// WithFields attaches structured fields when the implementation supports the
// optional FieldsLogger extension. Nil or empty maps are skipped safely.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// NoOp returns a logger that drops every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) Logger {
	return n
}
