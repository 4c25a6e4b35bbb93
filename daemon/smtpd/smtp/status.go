package smtp

// ReplyCode is a closed enumeration of the numeric SMTP replies this server is able to produce.
// Wire text is fixed per code so that every state transition that emits a given reply produces a
// byte-identical response, regardless of which piece of the state machine triggered it.
type ReplyCode int

const (
	// ReplyNone means the line produced no wire reply: each message line accepted during DATA is
	// silent until the terminating dot.
	ReplyNone ReplyCode = iota
	ReplyServiceReady
	ReplyStartTLS
	ReplyGoodbye
	ReplyHelo
	ReplyOK
	ReplyMessageSent
	ReplyEnterMessage
	ReplyBadSequence
	ReplyEncRequired
	ReplyAuthRequired
)

// replyText maps each ReplyCode to its canonical wire text, CRLF excluded.
var replyText = map[ReplyCode]string{
	ReplyServiceReady: "220 Service ready",
	ReplyStartTLS:     "220 Start TLS",
	ReplyGoodbye:      "221 Goodbye",
	ReplyHelo:         "250 mail.example.com",
	ReplyOK:           "250 OK",
	ReplyMessageSent:  "250 Message sent",
	ReplyEnterMessage: `354 enter mail, end with line containing only "."`,
	ReplyBadSequence:  "503 Bad sequence of commands",
	ReplyEncRequired:  "530 Encryption required",
	ReplyAuthRequired: "530 Authentication required",
}

// String renders the reply's exact wire text, without a trailing CRLF.
func (code ReplyCode) String() string {
	if text, exists := replyText[code]; exists {
		return text
	}
	return "500 Internal server error"
}
