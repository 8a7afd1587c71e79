package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors". Returns an empty Attr when
// every error is nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". Nil errors yield an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ErrorMessage records an error text under "error". Empty text yields an empty Attr.
func ErrorMessage(msg string) slog.Attr {
	if msg == "" {
		return slog.Attr{}
	}
	return slog.String("error", msg)
}

// Provider records a storage or email provider name.
func Provider[T ~string](name T) slog.Attr {
	return slog.String("provider", string(name))
}

// Operation records the name of the operation being performed.
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Key records an object key or path.
func Key(key string) slog.Attr {
	return slog.String("key", key)
}

// MessageID records a sent message identifier. Empty ids yield an empty Attr.
func MessageID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("message_id", id)
}

// Count records a number of affected items.
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}
