package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxdcmn/gpuhud/internal/config"
)

var endpointFlags struct {
	path    string
	timeout string
}

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Manage saved counter exporters",
}

var endpointLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tURL\tTIMEOUT")
		for _, ep := range cfg.Endpoints {
			fmt.Fprintf(w, "%s\t%s%s\t%s\n", ep.Name, ep.BaseURL, ep.Endpoint, ep.Timeout)
		}
		return w.Flush()
	},
}

var endpointAddCmd = &cobra.Command{
	Use:   "add NAME BASE_URL",
	Short: "Save a counter exporter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := time.ParseDuration(endpointFlags.timeout); err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ep := config.Endpoint{
			Name:     args[0],
			BaseURL:  args[1],
			Endpoint: endpointFlags.path,
			Timeout:  endpointFlags.timeout,
		}
		if err := config.AddEndpoint(cfg, ep); err != nil {
			return err
		}
		fmt.Printf("✓ added endpoint '%s' to %s\n", ep.Name, config.Path())
		return nil
	},
}

var endpointRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a saved endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := config.RemoveEndpoint(cfg, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ removed endpoint '%s'\n", args[0])
		return nil
	},
}

var endpointUpdateCmd = &cobra.Command{
	Use:   "update NAME BASE_URL",
	Short: "Change the URL of a saved endpoint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ep, ok := cfg.Lookup(args[0])
		if !ok {
			return fmt.Errorf("endpoint '%s' not found", args[0])
		}
		ep.BaseURL = args[1]
		if cmd.Flags().Changed("path") {
			ep.Endpoint = endpointFlags.path
		}
		if cmd.Flags().Changed("timeout") {
			if _, err := time.ParseDuration(endpointFlags.timeout); err != nil {
				return fmt.Errorf("invalid --timeout: %w", err)
			}
			ep.Timeout = endpointFlags.timeout
		}
		if err := config.UpdateEndpoint(cfg, args[0], ep); err != nil {
			return err
		}
		fmt.Printf("✓ updated endpoint '%s'\n", ep.Name)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{endpointAddCmd, endpointUpdateCmd} {
		c.Flags().StringVar(&endpointFlags.path, "path", "/counters", "counter endpoint path")
		c.Flags().StringVar(&endpointFlags.timeout, "timeout", "2s", "HTTP timeout")
	}
	endpointCmd.AddCommand(endpointLsCmd, endpointAddCmd, endpointRmCmd, endpointUpdateCmd)
	rootCmd.AddCommand(endpointCmd)
}
