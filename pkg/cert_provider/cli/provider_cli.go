package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gobuffalo/pop"
	"github.com/gobuffalo/pop/logging"
	"github.com/manualtls/manualtls/pkg/cert_provider/api"
	"github.com/manualtls/manualtls/pkg/config"
	"github.com/manualtls/manualtls/pkg/util"
	"github.com/sirupsen/logrus"
)

type App struct{}

type ServerCmd struct {
	Config string `short:"c" long:"config" type:"existingfile" help:"Path to the configuration file"`
}

type MigrateCmd struct {
	Config     string `short:"c" long:"config" type:"existingfile" help:"Path to the configuration file"`
	Migrations string `short:"p" long:"path" type:"existingdir" help:"Path to the migration files" default:"migrations/cert_provider"`
}

type RequestsOutstandingCmd struct {
	Relation string `long:"relation" help:"Only requests announced on this relation"`
}

type RequestsListCmd struct {
	Offset int    `long:"offset" help:"Offset" default:"0"`
	Limit  int    `long:"limit" help:"Limit" default:"50"`
	Status string `long:"status" help:"Filter by request status (outstanding or fulfilled)"`
}

type RequestsWaitCmd struct {
	Count   int `long:"count" help:"Number of outstanding requests to wait for" default:"1"`
	Timeout int `long:"timeout" help:"Wait timeout in seconds" default:"240"`
}

type CertificateProvideCmd struct {
	Requester string `short:"r" long:"requester" help:"Operator identity recorded on the fulfilled request" required:""`
	CSR       []byte `type:"filecontent" help:"Certificate signing request the certificate answers" required:""`
	Cert      []byte `type:"filecontent" help:"Certificate content" required:""`
	CACert    []byte `type:"filecontent" help:"CA certificate content" required:""`
	CAChain   []byte `type:"filecontent" help:"CA chain bundle content" required:""`
}

type RelationsListCmd struct {
	Offset int `long:"offset" help:"Offset" default:"0"`
	Limit  int `long:"limit" help:"Limit" default:"50"`
}

type RelationCertificatesCmd struct {
	ID string `required:"" help:"Relation ID"`
}

type StatusCmd struct{}

type ProviderCli struct {
	Server  ServerCmd  `cmd:"" help:"Run a certificate provider unit."`
	Migrate MigrateCmd `cmd:"" help:"Migrate database."`

	Client struct {
		Server string `short:"s" long:"server" help:"Server address" required:""`

		Requests struct {
			Outstanding RequestsOutstandingCmd `cmd:""`
			List        RequestsListCmd        `cmd:""`
			Wait        RequestsWaitCmd        `cmd:""`
		} `cmd:""`

		Certificate struct {
			Provide CertificateProvideCmd `cmd:""`
		} `cmd:""`

		Relations struct {
			List         RelationsListCmd        `cmd:""`
			Certificates RelationCertificatesCmd `cmd:""`
		} `cmd:""`

		Status StatusCmd `cmd:""`
	} `cmd:""`
}

func (*App) Run() {
	cli := ProviderCli{}
	ctx := kong.Parse(&cli)
	err := ctx.Run(&cli)
	if err != nil {
		logrus.Errorf("failed to run command: %v", err)
		os.Exit(1)
	}
}

func (cmd *ServerCmd) Run(cli *ProviderCli) error {
	cfg := api.RestServerConfig{}
	if err := config.FromFile(cli.Server.Config, &cfg); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}

	restServer, err := api.NewRestServerWithConfig(cfg)
	if err != nil {
		logrus.Errorf("failed to create rest server: %v", err)
		os.Exit(1)
	}

	logrus.Infof("starting certificate provider unit %s.", cfg.UnitName)
	go func() {
		if err := restServer.Run(); err != nil {
			logrus.Errorf("failed to start certificate provider: %v", err)
			os.Exit(1)
		}
	}()

	cmd.waitForInterrupt()
	restServer.Close(context.Background())
	return nil
}

func (cmd *ServerCmd) waitForInterrupt() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server......")
}

func (cmd *MigrateCmd) Run(cli *ProviderCli) error {
	popLogger := func(lvl logging.Level, s string, args ...interface{}) {
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

	pop.SetLogger(popLogger)
	cfg := api.RestServerConfig{}
	if err := config.FromFile(cli.Migrate.Config, &cfg); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		os.Exit(1)
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
		os.Exit(1)
	}

	if err := conn.Dialect.CreateDB(); err != nil {
		logrus.Warnf("failed to create database: %v", err)
	}

	migrator, err := pop.NewFileMigrator(cli.Migrate.Migrations, conn)
	if err != nil {
		logrus.Errorf("failed to create migrator: %v", err)
		os.Exit(1)
	}
	// Remove SchemaPath to prevent migrator try to dump schema.
	migrator.SchemaPath = ""

	if err := migrator.Up(); err != nil {
		logrus.Errorf("failed to migrate: %v", err)
		os.Exit(1)
	}

	return nil
}

func (*RequestsOutstandingCmd) Run(cli *ProviderCli) error {
	client := NewRestClient(cli.Client.Server, "")
	entries, err := client.GetOutstandingCertificateRequests(cli.Client.Requests.Outstanding.Relation)
	if err != nil {
		logrus.Errorf("failed to get outstanding certificate requests: %v", err)
		os.Exit(1)
	}

	printJSON(entries)
	return nil
}

func (*RequestsListCmd) Run(cli *ProviderCli) error {
	client := NewRestClient(cli.Client.Server, "")
	result, err := client.ListCertificateRequests(cli.Client.Requests.List.Offset, cli.Client.Requests.List.Limit, cli.Client.Requests.List.Status)
	if err != nil {
		logrus.Errorf("failed to list certificate requests: %v", err)
		os.Exit(1)
	}

	printJSON(result)
	return nil
}

func (*RequestsWaitCmd) Run(cli *ProviderCli) error {
	client := NewRestClient(cli.Client.Server, "")
	cmd := cli.Client.Requests.Wait

	var entries []api.OutstandingCertificateRequest
	err := util.WaitFor(context.Background(), time.Duration(cmd.Timeout)*time.Second, 2*time.Second,
		func(ctx context.Context) (bool, error) {
			result, err := client.GetOutstandingCertificateRequests("")
			if err != nil {
				logrus.Warnf("failed to get outstanding certificate requests: %v", err)
				return false, nil
			}
			entries = result
			return len(entries) >= cmd.Count, nil
		})
	if err != nil {
		logrus.Errorf("gave up waiting for %d outstanding certificate requests: %v", cmd.Count, err)
		os.Exit(1)
	}

	printJSON(entries)
	return nil
}

func (*CertificateProvideCmd) Run(cli *ProviderCli) error {
	cmd := cli.Client.Certificate.Provide
	client := NewRestClient(cli.Client.Server, cmd.Requester)

	req := api.ProvideCertificateActionRequest{
		Certificate:               base64.StdEncoding.EncodeToString(cmd.Cert),
		CACertificate:             base64.StdEncoding.EncodeToString(cmd.CACert),
		CAChain:                   base64.StdEncoding.EncodeToString(cmd.CAChain),
		CertificateSigningRequest: base64.StdEncoding.EncodeToString(cmd.CSR),
	}
	record, err := client.ProvideCertificate(req)
	if err != nil {
		logrus.Errorf("failed to provide certificate: %v", err)
		os.Exit(1)
	}

	logrus.Infof("Certificate provided for request %s", record.Fingerprint)
	return nil
}

func (*RelationsListCmd) Run(cli *ProviderCli) error {
	client := NewRestClient(cli.Client.Server, "")
	result, err := client.ListRelations(cli.Client.Relations.List.Offset, cli.Client.Relations.List.Limit)
	if err != nil {
		logrus.Errorf("failed to list relations: %v", err)
		os.Exit(1)
	}

	printJSON(result)
	return nil
}

func (*RelationCertificatesCmd) Run(cli *ProviderCli) error {
	client := NewRestClient(cli.Client.Server, "")
	databag, err := client.GetRelationCertificates(cli.Client.Relations.Certificates.ID)
	if err != nil {
		logrus.Errorf("failed to get relation certificates: %v", err)
		os.Exit(1)
	}

	printJSON(databag)
	return nil
}

func (*StatusCmd) Run(cli *ProviderCli) error {
	client := NewRestClient(cli.Client.Server, "")
	unitStatus, err := client.GetStatus()
	if err != nil {
		logrus.Errorf("failed to get unit status: %v", err)
		os.Exit(1)
	}

	printJSON(unitStatus)
	return nil
}

func printJSON(data any) {
	pretty := bytes.Buffer{}
	json.Indent(&pretty, []byte(util.StructToJSON(data)), "", "  ")
	fmt.Println(pretty.String())
}
