package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/gobuffalo/pop"
	"github.com/gobuffalo/pop/logging"
	"github.com/manualtls/manualtls/pkg/config"
	"github.com/manualtls/manualtls/pkg/relay/server/storage/postgres"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const appName string = "relation-hub"

// HubApp is the main application structure for the relation hub CLI.
type HubApp struct {
	rootCmd *cobra.Command
}

type HubConfig struct {
	Database     postgres.DatabaseConfig `yaml:"database"`
	LocalAddress string                  `yaml:"local_address"`
	OtherPeers   []string                `yaml:"other_peers"`
	TLSCertFile  string                  `yaml:"tls_cert_file"`
	TLSKeyFile   string                  `yaml:"tls_key_file"`
	OTLPEndpoint string                  `yaml:"otlp_endpoint"`
}

// NewHubApp creates a new instance of the relation hub CLI application.
func NewHubApp() *HubApp {
	app := &HubApp{}
	app.rootCmd = &cobra.Command{
		Use:   appName,
		Short: "Relation hub for manual TLS certificate provisioning",
		Long:  `Relation hub stores and replicates relation events between certificate requirer agents and provider operators.`,
	}

	// Add server command
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Run the relation hub",
		RunE:  app.runServer,
	}
	serverCmd.Flags().StringP("config", "c", "", "Path to the configuration file")
	serverCmd.MarkFlagRequired("config")
	serverCmd.MarkFlagFilename("config")
	app.rootCmd.AddCommand(serverCmd)

	// Add migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		RunE:  app.runMigrate,
	}
	migrateCmd.Flags().StringP("config", "c", "", "Path to the configuration file")
	migrateCmd.Flags().StringP("path", "p", "migrations/relation_hub", "Path to the migration files")
	migrateCmd.MarkFlagRequired("config")
	migrateCmd.MarkFlagFilename("config")
	migrateCmd.MarkFlagDirname("path")
	app.rootCmd.AddCommand(migrateCmd)

	return app
}

// Run executes the CLI application
func (app *HubApp) Run() {
	if err := app.rootCmd.Execute(); err != nil {
		logrus.Errorf("failed to run command: %v", err)
		os.Exit(1)
	}
}

// Server command implementation
func (app *HubApp) runServer(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg := HubConfig{}
	if err := config.FromFile(configPath, &cfg); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		return err
	}

	eventStorage, err := postgres.NewEventStorageWithConfig(cfg.Database)
	if err != nil {
		logrus.Errorf("failed to create event storage: %v", err)
		return err
	}

	if otlpEndpoint := cfg.OTLPEndpoint; otlpEndpoint != "" {
		otlp_util.InitGlobalTracer(
			otlp_util.WithEndPoint(otlpEndpoint),
			otlp_util.WithServiceName(appName),
			otlp_util.WithInSecure(),
			otlp_util.WithErrorHandler(func(err error) {
				logrus.Warnf("OTLP error: %v", err)
			}),
		)
	}

	options := []ServerOption{
		WithLocalAddress(cfg.LocalAddress),
		WithPeers(cfg.OtherPeers),
		WithStorage(eventStorage),
	}
	if cfg.TLSCertFile != "" || cfg.TLSKeyFile != "" {
		options = append(options, WithTLS(cfg.TLSCertFile, cfg.TLSKeyFile))
	}

	hubServer, err := NewServer(options...)
	if err != nil {
		logrus.Errorf("failed to create relation hub: %v", err)
		return err
	}

	logrus.Info("starting relation hub.")
	go func() {
		if err := hubServer.Run(); err != nil {
			logrus.Errorf("failed to start relation hub: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down relation hub......")
	hubServer.Close()
	return nil
}

// Migrate command implementation
func (app *HubApp) runMigrate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	migrationsPath, _ := cmd.Flags().GetString("path")

	pop.SetLogger(popLogger)
	cfg := HubConfig{}
	if err := config.FromFile(configPath, &cfg); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		return err
	}

	cd := pop.ConnectionDetails{
		Dialect:  "postgres",
		Database: cfg.Database.Database,
		Host:     cfg.Database.Host,
		Port:     fmt.Sprintf("%d", cfg.Database.Port),
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
	}
	conn, err := pop.NewConnection(&cd)
	if err != nil {
		logrus.Errorf("failed to create connection: %v", err)
		return err
	}

	if err := conn.Dialect.CreateDB(); err != nil {
		logrus.Warnf("failed to create database: %v", err)
	}

	migrator, err := pop.NewFileMigrator(migrationsPath, conn)
	if err != nil {
		logrus.Errorf("failed to create migrator: %v", err)
		return err
	}
	// Remove SchemaPath to prevent migrator try to dump schema.
	migrator.SchemaPath = ""

	if err := migrator.Up(); err != nil {
		logrus.Errorf("failed to migrate: %v", err)
		return err
	}

	return nil
}

func popLogger(lvl logging.Level, s string, args ...interface{}) {
	switch lvl {
	case logging.Debug:
		logrus.Debugf(s, args...)
	case logging.Info:
		logrus.Infof(s, args...)
	case logging.Warn:
		logrus.Warnf(s, args...)
	case logging.Error:
		logrus.Errorf(s, args...)
	case logging.SQL:
		// Do nothing because we don't want to log SQL queries.
	}
}
