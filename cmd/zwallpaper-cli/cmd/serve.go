package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zwallpaper/internal/adapters/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over a local HTTP API",
	Long: `Serve the catalog over HTTP until interrupted.

Routes:
  GET  /categories
  GET  /items?category=&q=
  GET  /thumbnails/<path>
  POST /apply    {"path": "<path>"}
  POST /refresh

Examples:
  zwallpaper-cli serve
  zwallpaper-cli serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := loadCatalog(ctx); err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}

		e := httpapi.NewServer(GetService(), logger)
		fmt.Printf("Serving %s on http://%s\n", GetService().CollectionID(), addr)
		return httpapi.Serve(ctx, e, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
