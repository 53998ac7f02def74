package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ironsheep/photo-edit-mcp/internal/httpapi"
	"github.com/ironsheep/photo-edit-mcp/internal/server"
)

func newHTTPCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the editing tools over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = rt.cfg.HTTP.Addr
			}

			gin.SetMode(gin.ReleaseMode)
			srv := server.New(rt.editor, server.Options{Config: rt.cfg, Logger: rt.log, Version: Version})
			router := httpapi.NewRouter(srv, rt.log.WithField("component", "http"))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpapi.ListenAndServe(ctx, addr, router, rt.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
