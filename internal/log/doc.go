// Package log provides the structured logger used by complyreport.
//
// Loggers are built on log/slog and wrapped in a SecureHandler that masks
// credentials before they reach the output. Configuration documents carry
// passwords, sudo passwords and automate tokens, and the diagnose mode and
// deprecation warnings log option values, so masking happens in the handler
// rather than at each call site.
//
// # Levels
//
// The accepted level names are debug, info, warn, error and fatal. Any other
// name selects info. fatal maps to a level above slog.LevelError.
//
// # Destination
//
// When a machine-readable reporter (json, json-min, json-rspec, junit or
// html) writes to standard output, log records go to standard error so the
// report stays parseable. An explicit log location always wins.
//
// # Usage
//
//	logger, closeFn, err := log.New(log.Options{
//	    Level:          "debug",
//	    Format:         "json",
//	    SuppressStdout: cfg.SuppressLogOutput(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer closeFn()
//
//	logger.Warn("reporter has no renderer", "reporter", "html")
package log
