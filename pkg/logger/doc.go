// Package logger builds configured slog.Logger instances for the service.
//
// The factory produces JSON output for production log aggregation or text
// output for development, optionally tagged with static service attributes:
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithService("taskqueue"),
//	)
package logger
