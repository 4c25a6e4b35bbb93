package sink

import (
	"fmt"

	"github.com/quietmail/mailsrv/daemon/smtpd/smtp"
)

// PrintSink writes a one-line summary of each accepted envelope via a logging function, useful
// as a default sink when no persistence backend is configured. It never returns an error.
type PrintSink struct {
	Printf func(format string, values ...interface{})
}

// NewPrintSink builds a PrintSink. A nil printf defaults to fmt.Printf.
func NewPrintSink(printf func(format string, values ...interface{})) *PrintSink {
	if printf == nil {
		printf = fmt.Printf
	}
	return &PrintSink{Printf: printf}
}

func (p *PrintSink) Handle(env *smtp.Envelope) error {
	p.Printf("mail from %s to %v (%d bytes)\n", env.From, env.To, len(env.Data))
	return nil
}
