// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file looked up in the config directory.
const configName = "campathview.json"

// Config holds the settings of one campathview run.
type Config struct {
	LogLevel string        `json:"logLevel" mapstructure:"logLevel"`
	Path     string        `json:"path" mapstructure:"path"`
	Frames   int           `json:"frames" mapstructure:"frames"`
	Times    []float64     `json:"times" mapstructure:"times"`
	Plot     string        `json:"plot" mapstructure:"plot"`
	Output   OutputConfig  `json:"output" mapstructure:"output"`
	Camera   CameraConfig  `json:"camera" mapstructure:"camera"`
	Overlay  OverlayConfig `json:"overlay" mapstructure:"overlay"`
}

// OutputConfig controls the rendered images.
type OutputConfig struct {
	Dir    string `json:"dir" mapstructure:"dir"`
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
}

// CameraConfig places the viewer the frames are rendered from. Angles are
// in degrees.
type CameraConfig struct {
	X     float64 `json:"x" mapstructure:"x"`
	Y     float64 `json:"y" mapstructure:"y"`
	Z     float64 `json:"z" mapstructure:"z"`
	Pitch float64 `json:"pitch" mapstructure:"pitch"`
	Yaw   float64 `json:"yaw" mapstructure:"yaw"`
	Fov   float64 `json:"fov" mapstructure:"fov"`
	Near  float64 `json:"near" mapstructure:"near"`
	Far   float64 `json:"far" mapstructure:"far"`
}

// OverlayConfig maps onto campath options.
type OverlayConfig struct {
	Epsilon        float64 `json:"epsilon" mapstructure:"epsilon"`
	Samples        int     `json:"samples" mapstructure:"samples"`
	Capacity       int     `json:"capacity" mapstructure:"capacity"`
	Axis           bool    `json:"axis" mapstructure:"axis"`
	Camera         bool    `json:"camera" mapstructure:"camera"`
	CompileShaders bool    `json:"compileShaders" mapstructure:"compileShaders"`
}

// Load reads configuration from the JSON file in configDir and sets default
// values. A missing file is not an error.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("path", "campath.json")
	viper.SetDefault("frames", 8)
	viper.SetDefault("plot", "")

	viper.SetDefault("output.dir", "./frames")
	viper.SetDefault("output.width", 1280)
	viper.SetDefault("output.height", 720)

	viper.SetDefault("camera.x", -512)
	viper.SetDefault("camera.y", 0)
	viper.SetDefault("camera.z", 256)
	viper.SetDefault("camera.pitch", 20)
	viper.SetDefault("camera.yaw", 0)
	viper.SetDefault("camera.fov", 90)
	viper.SetDefault("camera.near", 4)
	viper.SetDefault("camera.far", 16384)

	viper.SetDefault("overlay.epsilon", 1.0)
	viper.SetDefault("overlay.samples", 1024)
	viper.SetDefault("overlay.capacity", 200)
	viper.SetDefault("overlay.axis", true)
	viper.SetDefault("overlay.camera", false)
	viper.SetDefault("overlay.compileShaders", true)

	viper.SetConfigName(configName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Settings returns the loaded configuration.
func Settings() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Output.Width <= 0 || cfg.Output.Height <= 0 {
		return Config{}, fmt.Errorf("invalid output size %dx%d", cfg.Output.Width, cfg.Output.Height)
	}
	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		return Config{}, fmt.Errorf("invalid camera depth range [%g, %g]", cfg.Camera.Near, cfg.Camera.Far)
	}
	return cfg, nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
