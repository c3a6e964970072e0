package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ironsheep/plate-vision/internal/server"
	"github.com/ironsheep/plate-vision/internal/vision"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server over stdin/stdout exposing the plate tools",
	Long: `Run an MCP (Model Context Protocol) server that speaks JSON-RPC 2.0 over
stdin/stdout. Configure it in your MCP client; logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		extractor, err := newExtractor()
		switch {
		case errors.Is(err, vision.ErrDetectorUnavailable):
			log.WithError(err).Warn("marker detection disabled; plate_detect and plate_read_label will fail")
			extractor = nil
		case err != nil:
			return err
		default:
			defer extractor.Close()
		}

		srv := server.New(extractor, log,
			server.WithLabelScale(cfg.LabelScale),
			server.WithLanguage(cfg.OCRLanguage),
		)
		log.WithField("version", Version).Info("MCP server listening on stdio")
		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
