package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maxdcmn/gpuhud/internal/hud"
	"github.com/maxdcmn/gpuhud/internal/model"
	"github.com/maxdcmn/gpuhud/internal/ui"
)

// Plain text frames use a fixed surface so the compiler line lands on the
// last row.
const (
	textCols = 40
	textRows = 12
)

var streamFlags struct {
	compact bool
	hud     bool
	ws      bool
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream counter snapshots via SSE or websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := resolveClient(cmd, cfg)
		if err != nil {
			return err
		}

		var handle func(model.Snapshot) error
		if streamFlags.hud {
			overlay := hud.New(parseElements(cfg.HUD), hud.SystemClock{})
			handle = func(s model.Snapshot) error {
				overlay.Update(hud.SourceFunc(func() model.Snapshot { return s }))
				return writeHUDText(os.Stdout, overlay)
			}
		} else {
			enc := json.NewEncoder(os.Stdout)
			if !streamFlags.compact {
				enc.SetIndent("", "  ")
			}
			handle = func(s model.Snapshot) error {
				return enc.Encode(s)
			}
		}

		if streamFlags.ws {
			return c.StreamWebSocket(cmd.Context(), handle)
		}
		return c.Stream(cmd.Context(), handle)
	},
}

// writeHUDText renders one overlay frame as plain text followed by a
// separator line.
func writeHUDText(w io.Writer, o *hud.Overlay) error {
	canvas := ui.NewCanvas(textCols, textRows)
	o.Render(canvas, hud.Pos{})

	var b strings.Builder
	for _, line := range canvas.Lines() {
		line = strings.TrimRight(line, " ")
		if line == "" {
			continue
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(strings.Repeat("-", textCols) + "\n")
	_, err := fmt.Fprint(w, b.String())
	return err
}

func init() {
	streamCmd.Flags().BoolVar(&streamFlags.compact, "compact", false, "print compact JSON (no indentation)")
	streamCmd.Flags().BoolVar(&streamFlags.hud, "hud", false, "print rendered overlay text instead of JSON")
	streamCmd.Flags().BoolVar(&streamFlags.ws, "ws", false, "follow the websocket feed instead of SSE")
	rootCmd.AddCommand(streamCmd)
}
