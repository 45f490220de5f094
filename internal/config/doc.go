// Package config provides user configuration management for artpoll.
//
// This package manages a YAML settings file holding the defaults for
// interface selection and the poll loop. Command line flags override it.
//
// # Configuration File Location
//
// The settings file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/artpoll/config.yaml or $HOME/.config/artpoll/config.yaml
//   - macOS: $HOME/.config/artpoll/config.yaml
//   - Windows: %LOCALAPPDATA%\artpoll\config.yaml
//
// ARTPOLL_CONFIG points at a different file.
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings.Poll.Target = "primary"
//	settings.Poll.Interval = 5 * time.Second
//
//	// Save changes atomically
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// A file that sets only some fields is completed with defaults on load:
//
//	version: 1
//	interface:
//	  name_prefix: eth
//	poll:
//	  interval: 1s
//	  priority: high
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
