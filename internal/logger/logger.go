package logger

import (
	"io"
	"log/slog"
	"strings"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// New создает логгер: текстовый для local, JSON для dev и prod
func New(env, level string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(env, level)}

	switch env {
	case EnvDev, EnvProd:
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

// ParseLevel уровень из конфигурации; пустой - по окружению
func ParseLevel(env, level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if env == EnvProd {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// Err атрибут ошибки для slog
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}
