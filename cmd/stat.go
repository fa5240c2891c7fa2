package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxdcmn/gpuhud/internal/utils"
)

var statFlags struct {
	watch   bool
	every   string
	compact bool
}

var statCmd = &cobra.Command{
	Use:   "stat",
	Short: "Print a counter snapshot (JSON) or watch snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		every, err := time.ParseDuration(statFlags.every)
		if err != nil || every <= 0 {
			return fmt.Errorf("invalid --every: %q", statFlags.every)
		}

		c, err := resolveClient(cmd, cfg)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		if !statFlags.compact {
			enc.SetIndent("", "  ")
		}

		printOnce := func() error {
			ctx, cancel := context.WithTimeout(cmd.Context(), c.Timeout())
			defer cancel()

			snap, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}
			return enc.Encode(snap)
		}

		if !statFlags.watch {
			return printOnce()
		}

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			if err := printOnce(); err != nil {
				utils.Warn("snapshot failed", "source", c.Name(), "error", err)
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-cmd.Context().Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	statCmd.Flags().BoolVar(&statFlags.watch, "watch", false, "watch snapshots continuously")
	statCmd.Flags().StringVar(&statFlags.every, "every", "1s", "watch interval (e.g. 1s, 250ms)")
	statCmd.Flags().BoolVar(&statFlags.compact, "compact", false, "print compact JSON (no indentation)")
}
