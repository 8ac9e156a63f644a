// Package logger provides structured logging for scribe using zerolog.
//
// It supports console and JSON output, level configuration, and
// component-scoped loggers with structured fields. Logs go to stderr by
// default so stdout stays free for transcripts.
//
// # Usage
//
//	log := logger.Get("dispatch")
//	log.Info("batch finished", logger.Fields(logger.FieldChunkTotal, 4))
package logger
