package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/artpoll/internal/artnet"
	"github.com/muurk/artpoll/internal/config"
	"github.com/muurk/artpoll/internal/logging"
	"github.com/muurk/artpoll/internal/netif"
	"github.com/muurk/artpoll/internal/poller"
	"github.com/muurk/artpoll/internal/ui"
)

// Command flags
var (
	namePrefix   string
	sourceAddr   string
	targetAddr   string
	pollInterval time.Duration
	pollCount    int
	priorityName string
	onError      string
	reuseSocket  bool
	liveView     bool
	rawOutput    bool
	forceInit    bool
)

// addPollFlags registers the poll flags on cmd. The root command carries
// them too since it polls when run without a subcommand.
func addPollFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&namePrefix, "prefix", netif.DefaultNamePrefix, "Interface name prefix used to select the source")
	cmd.Flags().StringVar(&sourceAddr, "source", "", "Source IPv4 address, skips interface selection")
	cmd.Flags().StringVar(&targetAddr, "target", "secondary", "Broadcast target: primary, secondary, <ip> or <ip>:<port>")
	cmd.Flags().DurationVar(&pollInterval, "interval", poller.DefaultInterval, "Pause between polls")
	cmd.Flags().IntVarP(&pollCount, "count", "n", 0, "Number of polls to send (0 polls until interrupted)")
	cmd.Flags().StringVar(&priorityName, "priority", artnet.DpLow.String(), "Diagnostics priority (low, med, high, critical, volatile)")
	cmd.Flags().StringVar(&onError, "on-error", poller.Abort.String(), "What a failed poll does to the run (abort, continue)")
	cmd.Flags().BoolVar(&reuseSocket, "reuse-socket", false, "Keep one socket open instead of rebinding for every poll")
	cmd.Flags().BoolVar(&liveView, "tui", false, "Show an interactive view instead of status lines")
}

func init() {
	addPollFlags(pollCmd)

	interfacesCmd.Flags().StringVar(&namePrefix, "prefix", netif.DefaultNamePrefix, "Interface name prefix used to select the source")

	packetCmd.Flags().StringVar(&priorityName, "priority", artnet.DpLow.String(), "Diagnostics priority (low, med, high, critical, volatile)")
	packetCmd.Flags().BoolVar(&rawOutput, "raw", false, "Write the datagram bytes to stdout")

	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file without asking")
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd)

	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(packetCmd)
	rootCmd.AddCommand(configCmd)
}

// pollCmd implements the 'poll' command
var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Broadcast ArtPoll packets",
	Long: `Select a source interface and broadcast ArtPoll packets from UDP port
6454 until interrupted or --count polls have been sent.

Flags override the settings file, which overrides the built-in defaults.
Press Ctrl-C (or q with --tui) to stop.`,
	Example: `  # Poll forever every 2.5s
  artpoll poll

  # Ten polls, one per second, from a fixed address
  artpoll poll --count 10 --interval 1s --source 10.0.0.20

  # Keep going when a send fails
  artpoll poll --on-error continue`,
	RunE: runPoll,
}

func runPoll(cmd *cobra.Command, args []string) error {
	// Suppress usage on execution errors (we're past argument parsing)
	cmd.SilenceUsage = true

	s, err := requireSettings()
	if err != nil {
		return err
	}

	applyPollFlags(cmd, s)
	if err := s.Validate(); err != nil {
		return err
	}

	source, err := resolveSource(s)
	if err != nil {
		printSelectionFailure(err, s.Interface.NamePrefix)
		return err
	}

	cfg, err := s.PollerConfig(source)
	if err != nil {
		return err
	}

	logging.Debug("Poll configuration",
		zap.Stringer("source", source),
		zap.Stringer("target", cfg.Target),
		zap.Duration("interval", cfg.Interval),
		zap.Int("count", cfg.Count),
		zap.Stringer("priority", cfg.Priority),
		zap.Stringer("on_error", cfg.OnError),
		zap.Bool("reuse_socket", cfg.ReuseSocket),
	)

	params := pollParams(cfg)
	command := "artpoll " + strings.Join(os.Args[1:], " ")

	if liveView && ui.IsTerminal() {
		return runLive(cmd.Context(), cfg, command, params)
	}

	runner := ui.NewPollRunner(ui.PollRunnerConfig{
		Title:   "ArtPoll Discovery",
		Command: strings.TrimSpace(command),
		Params:  params,
		Total:   cfg.Count,
	})
	p, err := poller.New(cfg, poller.WithOnPoll(runner.OnPoll))
	if err != nil {
		return err
	}
	_, err = runner.Run(cmd.Context(), p.Run)
	return err
}

func runLive(ctx context.Context, cfg poller.Config, command string, params []ui.Field) error {
	model := ui.NewLiveModel("ArtPoll Discovery", strings.TrimSpace(command), cfg.Count, params...)

	sum, err := ui.RunLive(ctx, model, func(ctx context.Context, onPoll func(poller.Report)) (poller.Summary, error) {
		p, err := poller.New(cfg, poller.WithOnPoll(onPoll))
		if err != nil {
			return poller.Summary{}, err
		}
		return p.Run(ctx)
	})

	runner := ui.NewPollRunner(ui.PollRunnerConfig{Total: cfg.Count})
	return runner.Finish(sum, err)
}

// applyPollFlags copies explicitly set flags over the loaded settings
func applyPollFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("prefix") {
		s.Interface.NamePrefix = namePrefix
	}
	if flags.Changed("source") {
		s.Interface.Source = sourceAddr
	}
	if flags.Changed("target") {
		s.Poll.Target = targetAddr
	}
	if flags.Changed("interval") {
		s.Poll.Interval = pollInterval
	}
	if flags.Changed("count") {
		s.Poll.Count = pollCount
	}
	if flags.Changed("priority") {
		s.Poll.Priority = priorityName
	}
	if flags.Changed("on-error") {
		s.Poll.OnError = onError
	}
	if flags.Changed("reuse-socket") {
		s.Poll.ReuseSocket = reuseSocket
	}
}

// resolveSource returns the fixed source address if one is configured,
// otherwise selects an interface.
func resolveSource(s *config.Settings) (netip.Addr, error) {
	addr, err := s.SourceAddr()
	if err != nil {
		return netip.Addr{}, fmt.Errorf("--source: %w", err)
	}
	if addr.IsValid() {
		logging.Info("Using fixed source address", zap.Stringer("source", addr))
		return addr, nil
	}
	return netif.FindBroadcastSource(s.Interface.NamePrefix)
}

func printSelectionFailure(err error, prefix string) {
	printer := ui.NewPrinter(os.Stdout)
	switch {
	case errors.Is(err, netif.ErrNoInterfaceFound):
		printer.PrintError("No broadcast interface", err, []string{
			fmt.Sprintf("No interface named %s* is up with broadcast, multicast and an IPv4 address", prefix),
			"Run 'artpoll interfaces' to see what the OS reports",
			"Use --prefix to match another adapter name, or --source to pick an address",
		})
	case errors.Is(err, netif.ErrEnumerationFailed):
		printer.PrintError("Interface enumeration failed", err, []string{
			"The OS refused to list network interfaces",
			"Use --source to skip interface selection",
		})
	}
}

func pollParams(cfg poller.Config) []ui.Field {
	count := "until interrupted"
	if cfg.Count > 0 {
		count = fmt.Sprint(cfg.Count)
	}
	return []ui.Field{
		{Key: "Source", Value: netip.AddrPortFrom(cfg.Source, artnet.Port).String()},
		{Key: "Target", Value: fmt.Sprintf("%s (%s)", cfg.Target, artnet.TargetName(cfg.Target))},
		{Key: "Interval", Value: cfg.Interval.String()},
		{Key: "Count", Value: count},
		{Key: "Priority", Value: cfg.Priority.String()},
	}
}

// interfacesCmd implements the 'interfaces' command
var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List network interfaces and the selected broadcast source",
	Long: `List every interface address the OS reports with its flags.

Interfaces marked ● qualify as a broadcast source: IPv4, up, running,
broadcast and multicast capable, and not a loopback. The first one whose
name starts with --prefix is used by 'artpoll poll'.`,
	RunE: runInterfaces,
}

func runInterfaces(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	s, err := requireSettings()
	if err != nil {
		return err
	}
	prefix := s.Interface.NamePrefix
	if cmd.Flags().Changed("prefix") {
		prefix = namePrefix
	}

	printer := ui.NewPrinter(os.Stdout)
	printer.PrintHeader("Network Interfaces", "artpoll interfaces", ui.Field{Key: "Prefix", Value: prefix})
	printer.Newline()

	list, err := netif.Interfaces()
	if err != nil {
		printSelectionFailure(err, prefix)
		return err
	}

	for _, ni := range list {
		logging.LogInterface(ni.Name, ni.Address, ni.Flags, netif.IsCandidate(ni))
	}

	sel := &netif.Selector{NamePrefix: prefix}
	selected, selErr := sel.SelectInterface(slices.Values(list))

	printer.Println(ui.RenderInterfaceTable(list, selected))
	printer.Newline()

	if selErr != nil {
		printer.PrintWarning("No broadcast interface",
			ui.Field{Key: "Prefix", Value: prefix},
			ui.Field{Key: "Hint", Value: "use --prefix or --source"},
		)
		return nil
	}
	printer.PrintSuccess("Broadcast source selected",
		ui.Field{Key: "Interface", Value: selected.Name},
		ui.Field{Key: "Source", Value: netip.AddrPortFrom(selected.Address, artnet.Port).String()},
	)
	return nil
}

// packetCmd implements the 'packet' command
var packetCmd = &cobra.Command{
	Use:   "packet",
	Short: "Show the ArtPoll datagram that would be sent",
	Example: `  # Field breakdown and hex dump
  artpoll packet --priority high

  # Send one poll by hand
  artpoll packet --raw | nc -u -b -w1 10.255.255.255 6454`,
	RunE: runPacket,
}

func runPacket(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	priority, err := artnet.ParsePriority(priorityName)
	if err != nil {
		return fmt.Errorf("--priority: %w", err)
	}

	data, err := artnet.NewPoll(priority).MarshalBinary()
	if err != nil {
		return err
	}

	logging.LogRawBytes("ArtPoll", data)

	if rawOutput {
		_, err = os.Stdout.Write(data)
		return err
	}

	printer := ui.NewPrinter(os.Stdout)
	view := ui.NewPacketView(fmt.Sprintf("ArtPoll (%d bytes)", len(data)), data).SetWidth(printer.Width())
	printer.Println(view.Render())
	return nil
}

// configCmd groups the settings file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		s, err := requireSettings()
		if err != nil {
			return err
		}
		data, err := s.Marshal()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		path, err := config.CreateDefaultConfig(forceInit)
		if errors.Is(err, fs.ErrExist) {
			if !ui.ConfirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), path) {
				return nil
			}
			path, err = config.CreateDefaultConfig(true)
		}
		if err != nil {
			return err
		}

		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Settings file written", ui.Field{Key: "Path", Value: path})
		return nil
	},
}
