/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gts-labs/gtscat/internal/discovery"
)

var watchDebounceMS int

var cmdWatch = &cobra.Command{
	Use:     "watch",
	Short:   "Watch --path roots and print changed files as they happen",
	Long:    "watch recursively watches every --path root and prints the sorted set of changed files after each burst of filesystem activity settles. It runs until interrupted.",
	Example: `  gtsctl --path ./examples watch --debounce-ms 250`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs := roots()
		if len(rs) == 0 {
			return requireFlag("path", "")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := discovery.NewWatcher(rs, time.Duration(watchDebounceMS)*time.Millisecond)
		logger.Info("watching", "roots", rs, "debounce_ms", watchDebounceMS)

		return w.Run(ctx, func(changed []string) {
			logger.Info("changed", "paths", changed)
		})
	},
}

func init() {
	cmdWatch.Flags().IntVar(&watchDebounceMS, "debounce-ms", int(discovery.DefaultDebounce/time.Millisecond), "debounce window in milliseconds")
}
