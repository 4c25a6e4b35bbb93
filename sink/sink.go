// Package sink defines where accepted mail envelopes go once a message's DATA phase completes.
package sink

import "github.com/quietmail/mailsrv/daemon/smtpd/smtp"

// Sink receives one completed envelope per call. Implementations must not retain the envelope
// pointer beyond the call: the driver that owns it reuses the underlying storage for the next
// message on the same connection.
type Sink interface {
	Handle(env *smtp.Envelope) error
}

// MultiSink fans a single envelope out to every registered sink, in registration order. It stops
// at the first sink that returns an error and does not call the remaining sinks: a later sink
// never sees a message that an earlier sink already rejected.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink builds a fan-out sink over the given sinks, called in the order given.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Handle(env *smtp.Envelope) error {
	for _, s := range m.sinks {
		if err := s.Handle(env); err != nil {
			return err
		}
	}
	return nil
}
