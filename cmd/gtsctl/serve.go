/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gts-labs/gtscat/gts"
	"github.com/gts-labs/gtscat/internal/discovery"
	"github.com/gts-labs/gtscat/internal/server"
)

var (
	serveHost      string
	servePort      int
	serveHotReload bool
)

var cmdServe = &cobra.Command{
	Use:     "serve",
	Short:   "Start the GTS HTTP catalog server",
	Long:    "serve starts the HTTP server over the catalog loaded from --path. With --hot-reload, a filesystem watcher rebuilds the store whenever an entity file under --path changes, and POST /reload rebuilds it on demand either way.",
	Example: `  gtsctl --path ./examples serve --host 127.0.0.1 --port 8000 --hot-reload`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		srv := server.NewServer(store, serveHost, servePort, flags.verbose)
		srv.Reload = func() (*gts.Store, error) {
			return newStore(), nil
		}

		if serveHotReload && len(roots()) > 0 {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := discovery.NewWatcher(roots(), discovery.DefaultDebounce)
			go func() {
				_ = w.Run(ctx, func(changed []string) {
					logger.Info("reloading store after filesystem change", "changed", changed)
					srv.SetStore(newStore())
				})
			}()
		}

		fmt.Printf("starting gtsctl server at http://%s:%d\n", serveHost, servePort)
		if flags.verbose == 0 {
			fmt.Println("use --verbose to see request logs")
		}

		return srv.Start()
	},
}

func init() {
	cmdServe.Flags().StringVar(&serveHost, "host", "127.0.0.1", "host to bind to")
	cmdServe.Flags().IntVar(&servePort, "port", 8000, "port to listen on")
	cmdServe.Flags().BoolVar(&serveHotReload, "hot-reload", false, "watch --path roots and rebuild the store automatically on change")
}
