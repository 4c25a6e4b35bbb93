package smtp

import "bytes"

// State is the closed set of places a single protocol cycle can be in. Unlike the older
// trait-object-per-state approach this replaces, State carries no behaviour of its own: all
// transition logic lives in the single Process function below, keyed on (State, Verb).
type State int

const (
	StateInit State = iota
	StateMail
	StateRcpt
	StateData
	StateDone
)

// dataTerminator is the lone line that ends a DATA phase.
var dataTerminator = []byte(".")

// Process advances the state machine by exactly one line. line has already had its trailing CRLF
// stripped by the connection driver. Process never blocks and never touches the network; it is a
// pure function of its three inputs plus env, which it may mutate in place.
//
// The QUIT short-circuit applies in every state except StateData: a line starting with QUIT ends
// the conversation immediately, regardless of what the current state would otherwise require.
// Inside StateData, a line reading "QUIT" is message body, not a command.
func Process(state State, line []byte, env *Envelope) (ReplyCode, State) {
	if state != StateData && bytes.HasPrefix(line, []byte("QUIT")) {
		return ReplyGoodbye, StateDone
	}

	if state == StateData {
		return processData(line, env)
	}

	cmd := ParseCommand(line)
	switch state {
	case StateInit:
		return processInit(cmd, env)
	case StateMail:
		return processMail(cmd, env)
	case StateRcpt:
		return processRcpt(cmd, env)
	case StateDone:
		return ReplyBadSequence, StateDone
	default:
		return ReplyBadSequence, state
	}
}

func processInit(cmd Command, env *Envelope) (ReplyCode, State) {
	switch cmd.Verb {
	case VerbHelo:
		env.SenderDomain = cmd.Arg
		return ReplyHelo, StateMail
	default:
		return ReplyBadSequence, StateInit
	}
}

func processMail(cmd Command, env *Envelope) (ReplyCode, State) {
	switch cmd.Verb {
	case VerbMailFrom:
		env.From = cmd.Arg
		return ReplyOK, StateRcpt
	default:
		return ReplyBadSequence, StateMail
	}
}

// processRcpt deliberately accepts DATA even when no RCPT TO has been seen: the server this
// engine is modeled on never enforced an at-least-one-recipient rule in this state, and nothing
// elsewhere in the transition table makes up for it.
func processRcpt(cmd Command, env *Envelope) (ReplyCode, State) {
	switch cmd.Verb {
	case VerbRcptTo:
		env.To = append(env.To, cmd.Arg)
		return ReplyOK, StateRcpt
	case VerbData:
		return ReplyEnterMessage, StateData
	default:
		return ReplyBadSequence, StateRcpt
	}
}

// processData appends one line of message body, applying dot-unstuffing, or closes out the
// message when it sees the lone-dot terminator.
func processData(line []byte, env *Envelope) (ReplyCode, State) {
	if bytes.Equal(line, dataTerminator) {
		return ReplyMessageSent, StateDone
	}

	unstuffed := line
	if bytes.HasPrefix(line, []byte("..")) {
		unstuffed = line[1:]
	}
	env.Data = append(env.Data, unstuffed...)
	env.Data = append(env.Data, '\r', '\n')
	return ReplyNone, StateData
}
