package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/visitor-log/internal/config"
	"github.com/evcraddock/visitor-log/internal/db"
	"github.com/evcraddock/visitor-log/internal/logging"
	"github.com/evcraddock/visitor-log/internal/notify"
	"github.com/evcraddock/visitor-log/internal/visitor"
	"github.com/evcraddock/visitor-log/internal/web"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the visitor API server",
		Long:  "Start the HTTP server for the visitor check-in API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")

	return cmd
}

func runServe(port string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}

	logging.Setup(cfg.DevMode())

	dbPath := cfg.DatabasePath
	if dbPath == "" {
		dbPath, err = db.DefaultPath()
		if err != nil {
			return err
		}
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
		}
	}()

	repo := visitor.NewRepository(database)
	notifier := notify.New(cfg.Notify())
	service := visitor.NewService(repo, notifier)
	server := web.NewServer(service, Version)

	return server.ListenAndServe(cfg.Port)
}
