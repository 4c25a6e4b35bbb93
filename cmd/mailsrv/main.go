// Command mailsrv starts a minimal SMTP receiver that persists every accepted message to SQLite.
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/quietmail/mailsrv/daemon/smtpd"
	"github.com/quietmail/mailsrv/lalog"
	"github.com/quietmail/mailsrv/metrics"
	"github.com/quietmail/mailsrv/sink"
)

const (
	defaultListenAddress = "0.0.0.0:25"
	defaultSQLitePath    = "email.db"
	defaultPerIPLimit    = 8
)

func main() {
	app := &cli.App{
		Name:  "mailsrv",
		Usage: "accept SMTP mail and persist it to SQLite",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "smtp-listen-address",
				EnvVars: []string{"SMTP_LISTEN_ADDRESS"},
				Value:   defaultListenAddress,
				Usage:   "host:port to listen for SMTP connections on",
			},
			&cli.StringFlag{
				Name:    "sqlite-path",
				EnvVars: []string{"SQLITE_PATH"},
				Value:   defaultSQLitePath,
				Usage:   "path to the SQLite database file messages are persisted to",
			},
			&cli.IntFlag{
				Name:    "per-ip-limit",
				EnvVars: []string{"PER_IP_LIMIT"},
				Value:   defaultPerIPLimit,
				Usage:   "maximum SMTP conversations a single IP may start within a 10 second window",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := &lalog.Logger{ComponentName: "mailsrv"}

	store, err := sink.OpenSQLiteStore(c.String("sqlite-path"))
	if err != nil {
		return err
	}
	defer store.Close()

	progMetrics := metrics.New()
	if err := progMetrics.RegisterGlobally(); err != nil {
		logger.Warning("", err, "failed to register prometheus metrics")
	}

	host, portStr, err := net.SplitHostPort(c.String("smtp-listen-address"))
	if err != nil {
		return fmt.Errorf("mailsrv: invalid --smtp-listen-address %q - %w", c.String("smtp-listen-address"), err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("mailsrv: invalid port in --smtp-listen-address %q - %w", c.String("smtp-listen-address"), err)
	}

	daemon := &smtpd.Daemon{
		Address:    host,
		Port:       port,
		PerIPLimit: c.Int("per-ip-limit"),
		Sink:       sink.NewMultiSink(sink.NewPrintSink(nil), store),
		Metrics:    progMetrics,
	}
	if err := daemon.Initialise(); err != nil {
		return err
	}
	return daemon.StartAndBlock()
}
