// Package smtpd listens for SMTP connections and hands each accepted message to a sink.
package smtpd

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/quietmail/mailsrv/daemon/smtpd/smtp"
	"github.com/quietmail/mailsrv/lalog"
	"github.com/quietmail/mailsrv/metrics"
	"github.com/quietmail/mailsrv/sink"
)

const (
	// RateLimitIntervalSec is the width of the fixed interval PerIPLimit is measured against; the
	// per-IP counters are reset when each interval ends.
	RateLimitIntervalSec = 10
)

// Daemon accepts SMTP connections on a TCP address and delivers every accepted message to Sink.
// Unlike the mail-forwarding, toolbox-command-running daemon this is descended from, it has no
// notion of accepted domains or an outbound relay: every syntactically well-formed message that
// clears the per-IP rate limit is accepted and handed to Sink.
type Daemon struct {
	Address    string // Network address to listen to, e.g. 0.0.0.0 for all network interfaces.
	Port       int    // Port number to listen on.
	PerIPLimit int    // How many conversations an IP may start within RateLimitIntervalSec.

	Sink    sink.Sink        // Where accepted envelopes are delivered. Required.
	Metrics *metrics.Metrics // Optional; nil disables counter updates.

	listener  net.Listener
	rateLimit *lalog.RateLimit
	logger    *lalog.Logger
}

// Initialise validates configuration and prepares internal state. Call it before StartAndBlock.
func (daemon *Daemon) Initialise() error {
	daemon.logger = &lalog.Logger{ComponentName: "smtpd", ComponentID: []lalog.LoggerIDField{{Key: "Addr", Value: fmt.Sprintf("%s:%d", daemon.Address, daemon.Port)}}}
	if daemon.Address == "" {
		return errors.New("smtpd.Initialise: listen address must not be empty")
	}
	if daemon.Port < 1 {
		return errors.New("smtpd.Initialise: listen port must be greater than 0")
	}
	if daemon.PerIPLimit < 1 {
		return errors.New("smtpd.Initialise: PerIPLimit must be greater than 0")
	}
	if daemon.Sink == nil {
		return errors.New("smtpd.Initialise: a sink must be configured")
	}
	daemon.rateLimit = lalog.NewRateLimit(RateLimitIntervalSec, daemon.PerIPLimit, daemon.logger)
	return nil
}

// HandleConnection drives a single accepted connection's protocol cycle and closes it on return.
func (daemon *Daemon) HandleConnection(clientConn net.Conn) {
	beginTime := time.Now()
	defer func() {
		daemon.logger.Info(clientConn.RemoteAddr(), nil, "conversation lasted %s", time.Since(beginTime))
	}()

	clientIP, _, err := net.SplitHostPort(clientConn.RemoteAddr().String())
	if err != nil {
		clientIP = clientConn.RemoteAddr().String()
	}
	if !daemon.rateLimit.Add(clientIP, true) {
		if daemon.Metrics != nil {
			daemon.Metrics.IncConnectionsRejected()
		}
		clientConn.Close()
		return
	}
	if daemon.Metrics != nil {
		daemon.Metrics.IncConnectionsAccepted()
	}

	var metricsAdapter smtp.Metrics
	if daemon.Metrics != nil {
		metricsAdapter = daemon.Metrics
	}
	driver := smtp.NewDriver(clientConn, daemon.Sink, daemon.logger, metricsAdapter)
	if err := driver.Run(); err != nil {
		daemon.logger.MaybeMinorError(err)
	}
}

// StartAndBlock starts listening and blocks until the listener is closed by Stop. Call only
// after a successful Initialise.
func (daemon *Daemon) StartAndBlock() error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", daemon.Address, daemon.Port))
	if err != nil {
		return fmt.Errorf("smtpd.StartAndBlock: failed to listen on %s:%d - %w", daemon.Address, daemon.Port, err)
	}
	daemon.listener = listener
	daemon.logger.Info("", nil, "going to listen for connections on %s", listener.Addr())
	for {
		clientConn, err := daemon.listener.Accept()
		if err != nil {
			if strings.Contains(err.Error(), "closed") {
				return nil
			}
			return fmt.Errorf("smtpd.StartAndBlock: failed to accept new connection - %w", err)
		}
		go daemon.HandleConnection(clientConn)
	}
}

// Stop closes the listener so StartAndBlock's accept loop returns. Safe to call more than once
// and safe to call before the daemon has started.
func (daemon *Daemon) Stop() {
	if daemon.listener != nil {
		if err := daemon.listener.Close(); err != nil {
			daemon.logger.Warning("", err, "failed to close listener")
		}
	}
}

// Addr returns the address the daemon is (or will be) listening on, suitable for dialling in
// tests.
func (daemon *Daemon) Addr() string {
	return net.JoinHostPort(daemon.Address, strconv.Itoa(daemon.Port))
}
