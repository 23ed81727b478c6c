package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobhunt/internal/server"
	"github.com/jonathan/jobhunt/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing résumé upload, job search, application tracking and document generation.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT and the config file)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, appOptions{durable: true, withLLM: true})
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		CORSOrigin:     cfg.Server.CORSOrigin,
	}, server.Deps{
		Service: a.service,
		Tracker: a.tracker,
		Writer:  a.writer,
		Limiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Logger:  a.logger,
	})

	return srv.Start(ctx)
}
