// Package logging provides structured logging for artpoll.
//
// This package wraps a zap logger with package-level convenience functions
// and a few helpers specific to interface discovery and ArtPoll transmission.
//
// # Log Levels
//
//   - Debug: Interface enumeration details, hex dumps of outgoing datagrams
//   - Info: Selected source address, each poll sent
//   - Warn: Per-iteration failures when the poller is set to continue
//   - Error: Failures that end a run
//
// # Configuration
//
// Logging is silent by default so the styled console output stays readable.
// Enable it with the --log-level flag or the ARTPOLL_LOG_LEVEL environment
// variable:
//
//	if err := logging.Initialize(logLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Log output goes to stderr in console format.
//
// # Domain Helpers
//
//	logging.LogInterface(ni.Name, ni.Address, ni.Flags, netif.IsCandidate(ni))
//	logging.LogPollSent(iteration, source, target, datagram)
//	logging.LogRawBytes("ArtPoll", datagram)
package logging
