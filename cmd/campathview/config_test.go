// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	if err := Load(t.TempDir()); err != nil {
		t.Fatalf("Load() without a config file: %v", err)
	}
	cfg, err := Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	want := Config{
		LogLevel: "info",
		Path:     "campath.json",
		Frames:   8,
		Output:   OutputConfig{Dir: "./frames", Width: 1280, Height: 720},
		Camera:   CameraConfig{X: -512, Z: 256, Pitch: 20, Fov: 90, Near: 4, Far: 16384},
		Overlay: OverlayConfig{
			Epsilon: 1, Samples: 1024, Capacity: 200, Axis: true, CompileShaders: true,
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Settings() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"times": [0.5, 1.5],
		"output": {"width": 320, "height": 200},
		"overlay": {"camera": true, "epsilon": 0.25}
	}`
	if err := os.WriteFile(filepath.Join(dir, configName), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if got.LogLevel != "debug" || got.Output.Width != 320 || got.Output.Height != 200 {
		t.Errorf("overrides not applied: %+v", got)
	}
	if !got.Overlay.Camera || got.Overlay.Epsilon != 0.25 || !got.Overlay.Axis {
		t.Errorf("overlay = %+v, want camera on, epsilon 0.25, axis default on", got.Overlay)
	}
	if diff := cmp.Diff([]float64{0.5, 1.5}, got.Times); diff != "" {
		t.Errorf("times mismatch (-want +got):\n%s", diff)
	}
	if got.Output.Dir != "./frames" {
		t.Errorf("output dir = %q, want default", got.Output.Dir)
	}
}

func TestLoadMalformed(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configName), []byte(`{"frames": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(dir); err == nil {
		t.Error("Load() accepted malformed JSON")
	}
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"zero width", "output.width", 0},
		{"negative height", "output.height", -1},
		{"zero near", "camera.near", 0},
		{"far before near", "camera.far", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			if err := Load(t.TempDir()); err != nil {
				t.Fatal(err)
			}
			viper.Set(tt.key, tt.val)
			if _, err := Settings(); err == nil {
				t.Errorf("Settings() accepted %s = %v", tt.key, tt.val)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
