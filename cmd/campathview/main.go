// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command campathview renders a camera path overlay into PNG images without
// a GPU.
//
// Settings come from campathview.json in the config directory; see Config.
// Flags override the most common ones:
//
//	campathview -config . -path demo.json -out frames -plot path.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/gogpu/campath"
)

func main() {
	var (
		configDir = flag.String("config", ".", "directory containing "+configName)
		path      = flag.String("path", "", "camera path JSON file")
		out       = flag.String("out", "", "output directory")
		plotFile  = flag.String("plot", "", "write a top-down trajectory plot to this file")
	)
	flag.Parse()

	if err := Load(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, "campathview:", err)
		os.Exit(1)
	}
	if *path != "" {
		viper.Set("path", *path)
	}
	if *out != "" {
		viper.Set("output.dir", *out)
	}
	if *plotFile != "" {
		viper.Set("plot", *plotFile)
	}
	cfg, err := Settings()
	if err != nil {
		fmt.Fprintln(os.Stderr, "campathview:", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	campath.SetLogger(log)

	if _, err := run(cfg, log); err != nil {
		log.Error("render failed", "err", err)
		os.Exit(1)
	}
}
