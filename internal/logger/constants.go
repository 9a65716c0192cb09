package logger

import "log/slog"

// levelByName maps LOG_LEVEL values onto slog levels; unknown names mean info
var levelByName = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

const (
	formatJSON = "json"
	formatText = "text"
)

const (
	DefaultServiceName = "pirot-raffle"
	DefaultVersion     = "dev"
	ReleaseVersion     = "1.0.0"

	EnvironmentDev  = "dev"
	EnvironmentProd = "prod"
)

// Attribute keys stamped on every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
