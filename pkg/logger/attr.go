package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
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

// Error records err under the key "error". Nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// CredentialID records the credential identifier. Empty ids yield an empty Attr.
func CredentialID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("credential_id", id)
}

// CredentialType records the one-time code family.
func CredentialType(t any) slog.Attr {
	return slog.Any("credential_type", t)
}

// Reason records why a code path degraded.
func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

// Slot records the time step or counter a code was derived for.
func Slot(slot uint64) slog.Attr {
	return slog.Uint64("slot", slot)
}

// Algorithm records a cipher, KDF or hash name under the key "algorithm".
func Algorithm(name any) slog.Attr {
	return slog.Any("algorithm", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Command records the CLI command under the key "command".
func Command(name string) slog.Attr {
	return slog.String("command", name)
}
