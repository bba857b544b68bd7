package churchsite

import (
	"github.com/goliatone/go-churchsite/internal/runtimeconfig"
	"github.com/goliatone/go-churchsite/internal/source"
)

// Errors surfaced by configuration validation and content loading,
// re-exported so callers can test with errors.Is without reaching into
// internal packages.
var (
	ErrUnknownKind     = source.ErrUnknownKind
	ErrSchemaViolation = source.ErrSchemaViolation

	ErrTimeZoneInvalid          = runtimeconfig.ErrTimeZoneInvalid
	ErrPermalinkPatternRequired = runtimeconfig.ErrPermalinkPatternRequired
	ErrMinistriesOrderInvalid   = runtimeconfig.ErrMinistriesOrderInvalid
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)
