package cmd

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxdcmn/gpuhud/internal/config"
)

// withSavedConfig points the config at a temp file holding cfg.
func withSavedConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	t.Setenv("GPUHUD_CONFIG", filepath.Join(t.TempDir(), "config.json"))
	if err := config.Save(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
}

// parseRootFlags returns a fresh command with the root flags parsed from
// args, so Changed reflects only this call.
func parseRootFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	rf = rootFlags{}
	cmd := &cobra.Command{Use: "gpuhud"}
	addRootFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cmd
}

func savedEndpoints() *config.Config {
	return &config.Config{
		Endpoints: []config.Endpoint{
			{Name: "local", BaseURL: "http://127.0.0.1:6767", Endpoint: "/counters", Timeout: "2s"},
			{Name: "rig", BaseURL: "http://10.0.0.5:7000", Endpoint: "/stats", Timeout: "750ms"},
			{Name: "lab", BaseURL: "http://10.0.0.9:7000", Timeout: "soon"},
		},
		HUD:           "memory",
		FrameInterval: "20ms",
	}
}

func TestResolveClient(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantName    string
		wantTimeout time.Duration
		wantErr     string
	}{
		{
			name:        "first saved endpoint by default",
			wantName:    "http://127.0.0.1:6767/counters",
			wantTimeout: 2 * time.Second,
		},
		{
			name:        "url wins over saved endpoint",
			args:        []string{"--url", "http://override:1/", "--source", "rig"},
			wantName:    "http://override:1/counters",
			wantTimeout: 2 * time.Second,
		},
		{
			name:        "url uses timeout flag",
			args:        []string{"--url", "http://override:1", "--timeout", "300ms"},
			wantName:    "http://override:1/counters",
			wantTimeout: 300 * time.Millisecond,
		},
		{
			name:        "source picks named endpoint and its timeout",
			args:        []string{"--source", "rig", "--timeout", "5s"},
			wantName:    "http://10.0.0.5:7000/stats",
			wantTimeout: 750 * time.Millisecond,
		},
		{
			name:        "endpoint flag overrides saved path",
			args:        []string{"--source", "rig", "--endpoint", "/v2/counters"},
			wantName:    "http://10.0.0.5:7000/v2/counters",
			wantTimeout: 750 * time.Millisecond,
		},
		{
			name:        "invalid saved timeout falls back to flag",
			args:        []string{"--source", "lab", "--timeout", "3s"},
			wantName:    "http://10.0.0.9:7000/counters",
			wantTimeout: 3 * time.Second,
		},
		{
			name:    "unknown source",
			args:    []string{"--source", "nope"},
			wantErr: "endpoint 'nope' not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withSavedConfig(t, savedEndpoints())
			cmd := parseRootFlags(t, tt.args...)

			cfg, err := loadConfig(cmd)
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			c, err := resolveClient(cmd, cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveClient: %v", err)
			}
			if c.Name() != tt.wantName {
				t.Errorf("Name = %q, want %q", c.Name(), tt.wantName)
			}
			if c.Timeout() != tt.wantTimeout {
				t.Errorf("Timeout = %v, want %v", c.Timeout(), tt.wantTimeout)
			}
		})
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantHUD      string
		wantInterval time.Duration
		wantDebug    bool
		wantErr      bool
	}{
		{
			name:         "config values without flags",
			wantHUD:      "memory",
			wantInterval: 20 * time.Millisecond,
		},
		{
			name:         "hud flag replaces config",
			args:         []string{"--hud", "gpuload,compiler"},
			wantHUD:      "gpuload,compiler",
			wantInterval: 20 * time.Millisecond,
		},
		{
			name:         "interval flag replaces config",
			args:         []string{"--interval", "5ms", "--debug"},
			wantHUD:      "memory",
			wantInterval: 5 * time.Millisecond,
			wantDebug:    true,
		},
		{
			name:    "invalid interval",
			args:    []string{"--interval", "fast"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withSavedConfig(t, savedEndpoints())
			cfg, err := loadConfig(parseRootFlags(t, tt.args...))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if cfg.HUD != tt.wantHUD {
				t.Errorf("HUD = %q, want %q", cfg.HUD, tt.wantHUD)
			}
			if cfg.Interval() != tt.wantInterval {
				t.Errorf("Interval = %v, want %v", cfg.Interval(), tt.wantInterval)
			}
			if cfg.Debug != tt.wantDebug {
				t.Errorf("Debug = %v, want %v", cfg.Debug, tt.wantDebug)
			}
		})
	}
}
