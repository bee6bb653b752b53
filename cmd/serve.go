// Package cmd — serve command.
package cmd

import (
	"fmt"
	"net/http"

	"github.com/gaurav-prasanna/sheetpress/config"
	"github.com/gaurav-prasanna/sheetpress/server"
	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversion HTTP server",
	Long: `Serve exposes the pipeline over HTTP:

  POST   /convert       multipart upload, returns the rendered artifact
  GET    /history       recent conversions
  DELETE /history/{id}  remove one history entry`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger := newLogger()

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("listening", "addr", flagAddr)
	fmt.Printf("SheetPress listening on %s\n", flagAddr)
	return http.ListenAndServe(flagAddr, srv.Router())
}
