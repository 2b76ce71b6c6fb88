package api

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ashokpds15/Myself/pkg/apitypes"
)

// redactingLogger strips the admin key from the query string and request
// dump fields that ginzap attaches to access and recovery logs.
type redactingLogger struct {
	log *zap.Logger
}

func (l redactingLogger) Info(msg string, fields ...zap.Field) {
	l.log.Info(msg, redactFields(fields)...)
}

func (l redactingLogger) Error(msg string, fields ...zap.Field) {
	l.log.Error(msg, redactFields(fields)...)
}

func redactFields(fields []zap.Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		if f.Type == zapcore.StringType && (f.Key == "query" || f.Key == "request") {
			f.String = apitypes.RedactAPIKey(f.String)
		}
		out[i] = f
	}
	return out
}
