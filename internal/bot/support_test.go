package bot

import "testing"

func TestParseSendTo(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantID    int64
		wantReply string
		wantOK    bool
	}{
		{"valid", "/sendto 123456789 hello", 123456789, "hello", true},
		{"multi word reply", "/sendto 42 your account is ready", 42, "your account is ready", true},
		{"persian reply", "/sendto 42 حساب شما آماده است", 42, "حساب شما آماده است", true},
		{"missing text", "/sendto 42", 0, "", false},
		{"missing everything", "/sendto", 0, "", false},
		{"non-numeric id", "/sendto abc hello", 0, "", false},
		{"zero id", "/sendto 0 hello", 0, "", false},
		{"blank reply", "/sendto 42    ", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, reply, ok := parseSendTo(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if id != tt.wantID || reply != tt.wantReply {
				t.Errorf("got (%d, %q), want (%d, %q)", id, reply, tt.wantID, tt.wantReply)
			}
		})
	}
}
