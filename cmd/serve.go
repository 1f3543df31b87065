package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"exposure/pkg/config"
	"exposure/pkg/controller"
	"exposure/pkg/scanservice"
	"exposure/pkg/server"
)

type serveOptions struct {
	host       string
	port       int
	serviceURL string
	report     string
}

func createServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive scan page",
		Long:  `Starts the web page where targets are submitted and reports are shown in executive and technical views.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			scanner, err := opts.scanner(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(server.ConfigFrom(cfg), scanner).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "Address to listen on")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on")
	cmd.Flags().StringVar(&opts.serviceURL, "service-url", "", "Base URL of the scan service")
	cmd.Flags().StringVar(&opts.report, "report", "", "Serve a saved report JSON instead of calling the scan service")

	return cmd
}

func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = o.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = o.port
	}
	if cmd.Flags().Changed("service-url") {
		cfg.Scan.ServiceURL = o.serviceURL
	}

	// The page opens its websocket from the address it was served on.
	self := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	if !slices.Contains(cfg.Server.AllowedOrigins, self) {
		cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, self)
	}
}

func (o *serveOptions) scanner(cfg *config.Config) (controller.Scanner, error) {
	if o.report != "" {
		return scanservice.LoadStatic(o.report)
	}
	return scanservice.NewClient(cfg.Scan.ServiceURL, time.Duration(cfg.Scan.Timeout)*time.Second), nil
}
