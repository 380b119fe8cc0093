package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/eventdesk/internal/buildinfo"
	"github.com/dmitrijs2005/eventdesk/internal/client/cli"
	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/config"
	"github.com/dmitrijs2005/eventdesk/internal/client/services"
	"github.com/dmitrijs2005/eventdesk/internal/filex"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ack, err := services.ParseAckPolicy(cfg.NotificationAck)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := filex.EnsureParentDir(cfg.DBPath); err != nil {
		return err
	}
	db, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	api := client.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout, log)
	push := client.NewWSChannel(cfg.PushURL, log)

	auth := services.NewAuthService(api, db, log)
	events := services.NewEventService(api, auth, log)
	notes := services.NewNotificationService(push, ack, log)

	log.Debug(ctx, "starting", "api", cfg.APIBaseURL, "push", cfg.PushURL, "db", cfg.DBPath)

	cli.NewApp(auth, events, notes, log, os.Stdin, os.Stdout).Run(ctx)
	return nil
}
