package smtp

// Envelope accumulates one message's sender, recipients, and body bytes over the course of a
// single protocol cycle. Fields are filled in command order and never un-set within a cycle; a
// fresh, empty Envelope is created for each new cycle on the same connection.
type Envelope struct {
	// SenderDomain is the textual domain supplied with HELO. Empty until HELO is accepted.
	SenderDomain string
	// From is the textual reverse-path supplied with MAIL FROM. Empty until accepted.
	From string
	// To is the ordered sequence of recipient textual paths; may contain duplicates.
	To []string
	// Data is the accumulated body of the message, dot-unstuffed, each line CRLF-terminated.
	Data []byte
}

// reset clears the envelope in place so the same allocation can be reused for the next cycle.
func (e *Envelope) reset() {
	e.SenderDomain = ""
	e.From = ""
	e.To = nil
	e.Data = nil
}
