package database

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
)

// zapTracer routes pgx query logs to zap. Routine query traces go to Debug.
type zapTracer struct {
	logger *zap.Logger
}

func newZapTracer(l *zap.Logger) *zapTracer {
	return &zapTracer{logger: l.Named("pgx")}
}

func (t *zapTracer) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	fields := make([]zap.Field, 0, 4)
	if sql, ok := data["sql"]; ok {
		fields = append(fields, zap.Any("sql", sql))
	}
	if args, ok := data["args"]; ok {
		fields = append(fields, zap.Any("args", args))
	}
	if d, ok := data["time"]; ok {
		fields = append(fields, zap.Any("time", d))
	}
	if err, ok := data["err"].(error); ok {
		fields = append(fields, zap.Error(err))
	}

	switch level {
	case tracelog.LogLevelError:
		t.logger.Error(msg, fields...)
	case tracelog.LogLevelWarn:
		t.logger.Warn(msg, fields...)
	default:
		t.logger.Debug(msg, fields...)
	}
}
