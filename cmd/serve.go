package cmd

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/maxdcmn/gpuhud/internal/device"
	"github.com/maxdcmn/gpuhud/internal/server"
	"github.com/maxdcmn/gpuhud/internal/utils"
)

var serveFlags struct {
	addr  string
	seed  uint64
	frame string
	push  string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Export counters of a simulated device over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := time.ParseDuration(serveFlags.frame)
		if err != nil || frame <= 0 {
			return fmt.Errorf("invalid --frame: %q", serveFlags.frame)
		}
		push, err := time.ParseDuration(serveFlags.push)
		if err != nil || push <= 0 {
			return fmt.Errorf("invalid --push: %q", serveFlags.push)
		}

		gin.SetMode(gin.ReleaseMode)
		sim := device.NewSim(serveFlags.seed)
		router := server.NewRouter(sim, push)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			return sim.Run(ctx, frame)
		})
		g.Go(func() error {
			return server.Serve(ctx, serveFlags.addr, router)
		})

		utils.Info("simulated device running", "seed", serveFlags.seed, "frame", frame, "push", push)
		err = g.Wait()
		utils.Info("exporter stopped", "frames", sim.Frames())
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "127.0.0.1:6767", "listen address")
	serveCmd.Flags().Uint64Var(&serveFlags.seed, "seed", 1, "simulated device seed")
	serveCmd.Flags().StringVar(&serveFlags.frame, "frame", "16ms", "simulated frame interval")
	serveCmd.Flags().StringVar(&serveFlags.push, "push", "100ms", "stream push interval")
	rootCmd.AddCommand(serveCmd)
}
