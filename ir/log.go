package ir

import (
	"context"
	"log/slog"
)

// slogType wraps a Type as a slog.LogValuer to not render type strings
// unless they definitely need to be logged
func slogType(t Type) slog.LogValuer { return typeLogValuer{t} }

type typeLogValuer struct{ Type }

func (l typeLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("str", TypeString(l.Type)),
		slog.String("name", l.TypeName()),
	)
}

// TypeSlogHandler is a slog.Handler capable of lazy-printing IR types
func TypeSlogHandler(underlying slog.Handler) slog.Handler {
	return &typeLogHandler{underlying: underlying}
}

type typeLogHandler struct {
	underlying slog.Handler
}

func (l *typeLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *typeLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	// for each attr, add it wrapped in slogType if it is an Any and then a Type
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Value.Kind() == slog.KindAny {
			if value, ok := attr.Value.Any().(Type); ok {
				newRecord.Add(attr.Key, slogType(value))
				return true
			}
		}
		newRecord.Add(attr)
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func (l *typeLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	for i, attr := range attrs {
		if attr.Value.Kind() == slog.KindAny {
			if value, ok := attr.Value.Any().(Type); ok {
				attr.Value = slog.AnyValue(slogType(value))
			}
			attrs[i] = attr
		}
	}
	return TypeSlogHandler(l.underlying.WithAttrs(attrs))
}

func (l *typeLogHandler) WithGroup(name string) slog.Handler {
	return TypeSlogHandler(l.underlying.WithGroup(name))
}

// TypeLogger wraps logger's handler with TypeSlogHandler.
func TypeLogger(logger *slog.Logger) *slog.Logger {
	return slog.New(TypeSlogHandler(logger.Handler()))
}
