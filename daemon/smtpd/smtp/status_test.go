package smtp

import "testing"

func TestReplyCode_String(t *testing.T) {
	cases := []struct {
		code ReplyCode
		want string
	}{
		{ReplyServiceReady, "220 Service ready"},
		{ReplyGoodbye, "221 Goodbye"},
		{ReplyHelo, "250 mail.example.com"},
		{ReplyOK, "250 OK"},
		{ReplyMessageSent, "250 Message sent"},
		{ReplyEnterMessage, `354 enter mail, end with line containing only "."`},
		{ReplyBadSequence, "503 Bad sequence of commands"},
	}
	for _, tc := range cases {
		if got := tc.code.String(); got != tc.want {
			t.Errorf("ReplyCode(%d).String() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestReplyCode_UnknownFallsBackToInternalError(t *testing.T) {
	var bogus ReplyCode = 999
	if got := bogus.String(); got != "500 Internal server error" {
		t.Errorf("unknown ReplyCode.String() = %q, want fallback text", got)
	}
}
