package smtp

import (
	"bytes"
	"testing"
)

func TestProcess_HappyPath(t *testing.T) {
	var env Envelope
	state := StateInit

	reply, state := Process(state, []byte("HELO mail.sender.com"), &env)
	if reply != ReplyHelo || state != StateMail {
		t.Fatalf("HELO: got (%v, %v)", reply, state)
	}
	if env.SenderDomain != "mail.sender.com" {
		t.Fatalf("SenderDomain = %q", env.SenderDomain)
	}

	reply, state = Process(state, []byte("MAIL FROM:<alice@sender.com>"), &env)
	if reply != ReplyOK || state != StateRcpt {
		t.Fatalf("MAIL FROM: got (%v, %v)", reply, state)
	}

	reply, state = Process(state, []byte("RCPT TO:<bob@example.com>"), &env)
	if reply != ReplyOK || state != StateRcpt {
		t.Fatalf("RCPT TO: got (%v, %v)", reply, state)
	}

	reply, state = Process(state, []byte("RCPT TO:<carol@example.com>"), &env)
	if reply != ReplyOK || state != StateRcpt || len(env.To) != 2 {
		t.Fatalf("second RCPT TO: got (%v, %v), To=%v", reply, state, env.To)
	}

	reply, state = Process(state, []byte("DATA"), &env)
	if reply != ReplyEnterMessage || state != StateData {
		t.Fatalf("DATA: got (%v, %v)", reply, state)
	}

	reply, state = Process(state, []byte("Subject: hi"), &env)
	if reply != ReplyNone || state != StateData {
		t.Fatalf("body line: got (%v, %v)", reply, state)
	}

	reply, state = Process(state, []byte("."), &env)
	if reply != ReplyMessageSent || state != StateDone {
		t.Fatalf("terminator: got (%v, %v)", reply, state)
	}

	if !bytes.Equal(env.Data, []byte("Subject: hi\r\n")) {
		t.Fatalf("Data = %q", env.Data)
	}
}

func TestProcess_DataWithoutRecipientsIsStillAccepted(t *testing.T) {
	var env Envelope
	env.From = "alice@sender.com"
	reply, state := Process(StateRcpt, []byte("DATA"), &env)
	if reply != ReplyEnterMessage || state != StateData {
		t.Fatalf("got (%v, %v)", reply, state)
	}
}

func TestProcess_OutOfOrderCommandIsBadSequence(t *testing.T) {
	var env Envelope
	reply, state := Process(StateInit, []byte("MAIL FROM:<alice@sender.com>"), &env)
	if reply != ReplyBadSequence || state != StateInit {
		t.Fatalf("got (%v, %v)", reply, state)
	}
}

func TestProcess_QuitShortCircuitsAnyNonDataState(t *testing.T) {
	for _, state := range []State{StateInit, StateMail, StateRcpt} {
		var env Envelope
		reply, next := Process(state, []byte("QUIT"), &env)
		if reply != ReplyGoodbye || next != StateDone {
			t.Fatalf("state %v: got (%v, %v)", state, reply, next)
		}
	}
}

func TestProcess_QuitTextDuringDataIsLiteralBody(t *testing.T) {
	var env Envelope
	reply, state := Process(StateData, []byte("QUIT"), &env)
	if reply != ReplyNone || state != StateData {
		t.Fatalf("got (%v, %v)", reply, state)
	}
	if !bytes.Equal(env.Data, []byte("QUIT\r\n")) {
		t.Fatalf("Data = %q", env.Data)
	}
}

func TestProcess_DotUnstuffing(t *testing.T) {
	var env Envelope
	_, state := Process(StateData, []byte("..leading dot was stuffed"), &env)
	if state != StateData {
		t.Fatalf("state = %v", state)
	}
	if !bytes.Equal(env.Data, []byte(".leading dot was stuffed\r\n")) {
		t.Fatalf("Data = %q", env.Data)
	}
}

func TestProcess_DoneStateRejectsFurtherCommands(t *testing.T) {
	var env Envelope
	reply, state := Process(StateDone, []byte("HELO mail.sender.com"), &env)
	if reply != ReplyBadSequence || state != StateDone {
		t.Fatalf("got (%v, %v)", reply, state)
	}
}
