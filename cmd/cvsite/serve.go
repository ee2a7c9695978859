// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cvsite/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the résumé site over HTTP",
	Long: `Serve runs the résumé site. The visitor's language is detected from the
Accept-Language header on the first visit and kept in a cookie; the page
offers a toggle to the other language. The PDF download renders on demand
when the data file is newer than the last build.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if log.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	pdfs, closePDFs, err := newPDFService(cfg, log)
	if err != nil {
		return err
	}
	defer closePDFs()

	srv := server.New(server.Deps{
		Documents: newLoader(cfg),
		PDFs:      pdfs,
		Config:    cfg.Server,
		Logger:    log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
