// Package logger provides the structured logging interface used by mediaseed.
//
// It wraps zerolog behind a small Logger interface:
//   - Debug, Info, Warn and Error levels
//   - fields via WithField, WithFields and WithError
//   - human readable console output, colored only on a terminal
//   - optional JSON log file written alongside the console
//
// Basic usage:
//
//	if err := logger.Initialize(&cfg.Logging); err != nil {
//	    return err
//	}
//	logger.WithField("url", url).Info("Downloaded: uploads/profile-pictures/profile_001.jpg")
//
// Tests can inject NewNopLogger() or NewTestLogger(), the latter recording
// every message for assertions.
package logger
