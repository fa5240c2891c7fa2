package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/maxdcmn/gpuhud/internal/client"
	"github.com/maxdcmn/gpuhud/internal/config"
	"github.com/maxdcmn/gpuhud/internal/device"
	"github.com/maxdcmn/gpuhud/internal/hud"
	"github.com/maxdcmn/gpuhud/internal/model"
	"github.com/maxdcmn/gpuhud/internal/ui"
	"github.com/maxdcmn/gpuhud/internal/utils"
)

type rootFlags struct {
	baseURL  string
	endpoint string
	source   string
	timeout  string
	hud      string
	interval string
	sim      bool
	seed     uint64
	debug    bool
	logFile  string
}

var rf rootFlags

var rootCmd = &cobra.Command{
	Use:           "gpuhud",
	Short:         "gpuhud: live overlay of graphics device counters",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// The dashboard owns the terminal, so only log there when asked to.
		if cmd == cmd.Root() && cfg.LogFile == "" {
			utils.DiscardLogs()
			return nil
		}
		return utils.InitLogger(cfg.Debug, cfg.LogFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		utils.CloseLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		elements := parseElements(cfg.HUD)
		interval := cfg.Interval()

		opts := ui.Options{
			Elements: elements,
			Interval: interval,
			Timeout:  parseTimeout(rf.timeout),
		}

		if rf.sim {
			sim := device.NewSim(rf.seed)
			opts.SourceName = "simulated device"
			opts.Fetch = func(ctx context.Context) (model.Snapshot, error) {
				sim.Frame(interval)
				return sim.StatCounters(), nil
			}
		} else {
			c, err := resolveClient(cmd, cfg)
			if err != nil {
				return err
			}
			opts.SourceName = c.Name()
			opts.Timeout = c.Timeout()
			opts.Fetch = func(ctx context.Context) (model.Snapshot, error) {
				s, err := c.Snapshot(ctx)
				if err != nil {
					return model.Snapshot{}, err
				}
				return *s, nil
			}
		}

		utils.Info("starting overlay", "source", opts.SourceName, "elements", elements.String(), "interval", interval)
		m := ui.NewDashboard(opts)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
				return nil
			}
			return err
		}
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies explicit flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("hud") {
		cfg.HUD = rf.hud
	}
	if flags.Changed("interval") {
		if _, err := time.ParseDuration(rf.interval); err != nil {
			return nil, fmt.Errorf("invalid --interval: %w", err)
		}
		cfg.FrameInterval = rf.interval
	}
	if flags.Changed("debug") {
		cfg.Debug = rf.debug
	}
	if flags.Changed("log-file") {
		cfg.LogFile = rf.logFile
	}
	return cfg, nil
}

func parseElements(list string) hud.Elements {
	elements, unknown := hud.ParseElements(list)
	for _, name := range unknown {
		utils.Warn("ignoring unknown hud element", "name", name)
	}
	return elements
}

func parseTimeout(raw string) time.Duration {
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout <= 0 {
		return 2 * time.Second
	}
	return timeout
}

// resolveClient picks the counter endpoint: --url wins, then the saved
// endpoint named by --source, then the first saved endpoint.
func resolveClient(cmd *cobra.Command, cfg *config.Config) (*client.Client, error) {
	if cmd.Flags().Changed("url") {
		return client.New(rf.baseURL, rf.endpoint, parseTimeout(rf.timeout)), nil
	}

	var ep config.Endpoint
	if rf.source != "" {
		found, ok := cfg.Lookup(rf.source)
		if !ok {
			return nil, fmt.Errorf("endpoint '%s' not found", rf.source)
		}
		ep = found
	} else {
		ep = cfg.Endpoints[0]
	}

	timeout, err := time.ParseDuration(ep.Timeout)
	if err != nil || timeout <= 0 {
		timeout = parseTimeout(rf.timeout)
	}
	path := ep.Endpoint
	if cmd.Flags().Changed("endpoint") || path == "" {
		path = rf.endpoint
	}
	return client.New(ep.BaseURL, path, timeout), nil
}

// addRootFlags registers the flags shared by every command.
func addRootFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&rf.baseURL, "url", "http://127.0.0.1:6767", "counter exporter base URL")
	pf.StringVar(&rf.endpoint, "endpoint", "/counters", "counter endpoint path")
	pf.StringVar(&rf.source, "source", "", "saved endpoint name (see 'gpuhud endpoint ls')")
	pf.StringVar(&rf.timeout, "timeout", "2s", "HTTP timeout (e.g. 2s, 500ms)")
	pf.StringVar(&rf.hud, "hud", config.DefaultHUD, "comma separated hud elements (or 'full')")
	pf.StringVar(&rf.interval, "interval", config.DefaultFrameInterval, "frame interval (e.g. 16ms, 50ms)")
	pf.BoolVar(&rf.debug, "debug", false, "enable debug logging")
	pf.StringVar(&rf.logFile, "log-file", "", "write logs to this file")
}

func init() {
	addRootFlags(rootCmd)

	rootCmd.Flags().BoolVar(&rf.sim, "sim", false, "drive the overlay from a built-in simulated device")
	rootCmd.Flags().Uint64Var(&rf.seed, "seed", 1, "simulated device seed")

	rootCmd.AddCommand(statCmd)
}
