package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuider/internal/config"
	"github.com/verte-zerg/tuider/internal/model"
	"github.com/verte-zerg/tuider/internal/tui"
)

func TestValidateReaderConfig(t *testing.T) {
	valid := model.ReaderConfig{WPM: 250, ORPColor: "red", SpeedStep: 25, Jump: 10, Orientation: time.Second}
	if err := validateReaderConfig(valid); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*model.ReaderConfig)
	}{
		{"wpm too low", func(c *model.ReaderConfig) { c.WPM = 59 }},
		{"wpm too high", func(c *model.ReaderConfig) { c.WPM = 1001 }},
		{"zero step", func(c *model.ReaderConfig) { c.SpeedStep = 0 }},
		{"zero jump", func(c *model.ReaderConfig) { c.Jump = 0 }},
		{"negative orientation", func(c *model.ReaderConfig) { c.Orientation = -time.Millisecond }},
		{"bad color", func(c *model.ReaderConfig) { c.ORPColor = "mauve" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := validateReaderConfig(cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	cfg := valid
	cfg.ORPColor = "mauve"
	if err := validateReaderConfig(cfg); !errors.Is(err, tui.ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}

func TestApplyFileConfigRespectsFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("wpm", "400"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	wpm := 300
	color := "cyan"
	jump := 4
	history := false
	applyFileConfig(cmd, config.ReaderConfig{
		WPM:      &wpm,
		ORPColor: &color,
		Jump:     &jump,
		History:  &history,
	})

	if readWPM != 400 {
		t.Fatalf("explicit flag overridden: wpm = %d", readWPM)
	}
	if readORPColor != "cyan" {
		t.Fatalf("orp-color = %q, want cyan", readORPColor)
	}
	if readJump != 4 {
		t.Fatalf("jump = %d, want 4", readJump)
	}
	if !readNoHistory {
		t.Fatalf("history = false in config should disable history")
	}
	if readSpeedStep != tui.DefaultSpeedStep {
		t.Fatalf("unset key changed speed-step to %d", readSpeedStep)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuider", "config.toml")
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensureConfigFile: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Reader.WPM != nil {
		t.Fatalf("template values should be commented out")
	}

	if err := os.WriteFile(path, []byte("[reader]\nwpm = 500\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensureConfigFile: %v", err)
	}
	cfg, err = config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Reader.WPM == nil || *cfg.Reader.WPM != 500 {
		t.Fatalf("existing config overwritten")
	}
}
