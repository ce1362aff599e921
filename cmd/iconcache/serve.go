package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sanshu/iconcache/ipc"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve cache commands as JSON lines on stdin/stdout",
		Long: `Serve reads one JSON request per line from stdin and writes one JSON
response per line to stdout:

  {"id":"1","command":"search_icons","args":{"query":"settings"}}
  {"id":"1","ok":true,"result":{"icons":[...],"total":120,...}}

Commands: search_icons, get_icon_content, get_icon_cache_stats,
clear_icon_cache, invalidate_icon_content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := a.newService(nil)
			if err != nil {
				return err
			}
			defer svc.Close()

			srv := ipc.NewServer(ipc.NewHandler(svc, a.logger.With("component", "ipc")), a.logger)
			err = srv.ServeStdio(ctx, os.Stdin, os.Stdout)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
