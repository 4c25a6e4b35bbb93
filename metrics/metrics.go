// Package metrics exposes the mail server's connection and message counters to prometheus.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters this server registers with prometheus. Unlike a gauge vector keyed
// by exe/label as the ambient framework's process metrics are, these are plain counters: there is
// only ever one mail daemon per process.
type Metrics struct {
	ConnectionsAccepted prometheus.Counter
	ConnectionsRejected prometheus.Counter
	MessagesAccepted    prometheus.Counter
	MessagesFailed      prometheus.Counter
}

// New constructs a fresh, unregistered set of counters.
func New() *Metrics {
	return &Metrics{
		ConnectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{Name: "mailsrv_connections_accepted_total"}),
		ConnectionsRejected: prometheus.NewCounter(prometheus.CounterOpts{Name: "mailsrv_connections_rejected_total"}),
		MessagesAccepted:    prometheus.NewCounter(prometheus.CounterOpts{Name: "mailsrv_messages_accepted_total"}),
		MessagesFailed:      prometheus.NewCounter(prometheus.CounterOpts{Name: "mailsrv_messages_failed_total"}),
	}
}

// IncConnectionsAccepted increments the accepted-connection counter.
func (m *Metrics) IncConnectionsAccepted() { m.ConnectionsAccepted.Inc() }

// IncConnectionsRejected increments the rejected-connection counter.
func (m *Metrics) IncConnectionsRejected() { m.ConnectionsRejected.Inc() }

// IncMessagesAccepted increments the accepted-message counter.
func (m *Metrics) IncMessagesAccepted() { m.MessagesAccepted.Inc() }

// IncMessagesFailed increments the failed-message counter.
func (m *Metrics) IncMessagesFailed() { m.MessagesFailed.Inc() }

// RegisterGlobally registers every counter with prometheus's default registry.
func (m *Metrics) RegisterGlobally() error {
	for _, c := range []prometheus.Collector{m.ConnectionsAccepted, m.ConnectionsRejected, m.MessagesAccepted, m.MessagesFailed} {
		if err := prometheus.Register(c); err != nil {
			return err
		}
	}
	return nil
}
