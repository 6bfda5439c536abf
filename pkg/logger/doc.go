// Package logger builds *slog.Logger instances for otpkit components and
// provides attribute helpers that keep key names consistent.
//
// New assembles a handler from functional options: output format (text or
// json), minimum level, static attributes and ContextExtractor callbacks
// that pull values out of a context.Context on every record. The resulting
// handler is wrapped in LogHandlerDecorator, which runs the extractors and
// redacts attributes whose key names sensitive material (secret, password,
// pin, key, plaintext) so a careless log call cannot leak a shared secret.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("otpctl"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	log.Debug("code degraded",
//	    logger.Component("otp"),
//	    logger.CredentialID(c.ID),
//	    logger.Reason("invalid_secret"),
//	)
//
// Engines and vaults default to Discard when no logger is supplied.
//
// # Error Handling
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
