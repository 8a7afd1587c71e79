// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers shared by the storage and email packages.
//
// # Usage
//
//	log := logger.FromEnv("uploads")
//	log.InfoContext(ctx, "file uploaded",
//	    logger.Provider(storage.ProviderAWS),
//	    logger.Key("avatars/u1.png"),
//	)
//
// New accepts options for level, format (text or json), output, static
// attributes and context extractors. WithEnvironment applies development
// (debug, text) or production (info, json) defaults, and FromEnv combines it
// with the LOG_LEVEL variable.
//
// Context extractors run on every record handled through the *Context
// methods, so request-scoped values stored in a context.Context show up in
// the output without building a new logger per request.
//
// Discard returns a logger that drops everything. Library types default to it
// when the caller passes no logger.
package logger
