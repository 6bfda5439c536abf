package metrics

import "errors"

var (
	// ErrRegister indicates that a collector could not be registered.
	ErrRegister = errors.New("failed to register metrics collector")
	// ErrStart indicates that the metrics server failed to start.
	ErrStart = errors.New("failed to start metrics server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown metrics server gracefully")
)
