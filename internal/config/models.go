package config

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/muurk/artpoll/internal/artnet"
	"github.com/muurk/artpoll/internal/netif"
	"github.com/muurk/artpoll/internal/poller"
)

// CurrentVersion is the settings file format version
const CurrentVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version   int             `yaml:"version"`
	Interface *InterfacePrefs `yaml:"interface,omitempty"`
	Poll      *PollPrefs      `yaml:"poll,omitempty"`
	Log       *LogPrefs       `yaml:"log,omitempty"`
}

// InterfacePrefs controls which adapter polls are sent from.
type InterfacePrefs struct {
	NamePrefix string `yaml:"name_prefix"`      // Adapter name prefix (e.g., "en", "eth")
	Source     string `yaml:"source,omitempty"` // Fixed source IPv4, skips selection when set
}

// PollPrefs holds the broadcast loop defaults.
type PollPrefs struct {
	Target      string        `yaml:"target"`       // "primary", "secondary", <ip> or <ip>:<port>
	Interval    time.Duration `yaml:"interval"`     // Pause between polls (e.g., "2.5s")
	Count       int           `yaml:"count"`        // 0 polls until interrupted
	Priority    string        `yaml:"priority"`     // low, med, high, critical, volatile
	OnError     string        `yaml:"on_error"`     // abort or continue
	ReuseSocket bool          `yaml:"reuse_socket"` // Hold one socket for the whole run
}

// LogPrefs holds logging defaults. The --log-level flag and
// ARTPOLL_LOG_LEVEL take precedence.
type LogPrefs struct {
	Level string `yaml:"level,omitempty"`
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	s := &Settings{Version: CurrentVersion}
	s.applyDefaults()
	return s
}

// applyDefaults fills sections and fields missing from a loaded file
func (s *Settings) applyDefaults() {
	if s.Interface == nil {
		s.Interface = &InterfacePrefs{}
	}
	if s.Interface.NamePrefix == "" {
		s.Interface.NamePrefix = netif.DefaultNamePrefix
	}
	if s.Poll == nil {
		s.Poll = &PollPrefs{}
	}
	if s.Poll.Target == "" {
		s.Poll.Target = "secondary"
	}
	if s.Poll.Interval == 0 {
		s.Poll.Interval = poller.DefaultInterval
	}
	if s.Poll.Priority == "" {
		s.Poll.Priority = artnet.DpLow.String()
	}
	if s.Poll.OnError == "" {
		s.Poll.OnError = poller.Abort.String()
	}
	if s.Log == nil {
		s.Log = &LogPrefs{}
	}
}

// Validate checks every value that is parsed later
func (s *Settings) Validate() error {
	if s.Interface != nil && s.Interface.Source != "" {
		if _, err := parseSource(s.Interface.Source); err != nil {
			return fmt.Errorf("interface.source: %w", err)
		}
	}
	if s.Poll == nil {
		return nil
	}
	if _, err := artnet.ParseTarget(s.Poll.Target); err != nil {
		return fmt.Errorf("poll.target: %w", err)
	}
	if s.Poll.Interval < 0 {
		return fmt.Errorf("poll.interval: must not be negative, got %v", s.Poll.Interval)
	}
	if s.Poll.Count < 0 {
		return fmt.Errorf("poll.count: must not be negative, got %d", s.Poll.Count)
	}
	if _, err := artnet.ParsePriority(s.Poll.Priority); err != nil {
		return fmt.Errorf("poll.priority: %w", err)
	}
	if _, err := poller.ParseErrorPolicy(s.Poll.OnError); err != nil {
		return fmt.Errorf("poll.on_error: %w", err)
	}
	return nil
}

// SourceAddr returns the configured fixed source, or an invalid Addr when
// the interface should be selected automatically.
func (s *Settings) SourceAddr() (netip.Addr, error) {
	if s.Interface == nil || s.Interface.Source == "" {
		return netip.Addr{}, nil
	}
	return parseSource(s.Interface.Source)
}

// PollerConfig converts the poll preferences into a poller.Config for source.
func (s *Settings) PollerConfig(source netip.Addr) (poller.Config, error) {
	cfg := poller.DefaultConfig(source)
	if s.Poll == nil {
		return cfg, nil
	}

	target, err := artnet.ParseTarget(s.Poll.Target)
	if err != nil {
		return cfg, fmt.Errorf("poll.target: %w", err)
	}
	priority, err := artnet.ParsePriority(s.Poll.Priority)
	if err != nil {
		return cfg, fmt.Errorf("poll.priority: %w", err)
	}
	policy, err := poller.ParseErrorPolicy(s.Poll.OnError)
	if err != nil {
		return cfg, fmt.Errorf("poll.on_error: %w", err)
	}

	cfg.Target = target
	cfg.Priority = priority
	cfg.OnError = policy
	cfg.Count = s.Poll.Count
	cfg.ReuseSocket = s.Poll.ReuseSocket
	if s.Poll.Interval > 0 {
		cfg.Interval = s.Poll.Interval
	}
	return cfg, nil
}

func parseSource(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%s is not an IPv4 address", s)
	}
	return addr, nil
}
