package httpserver

import "testing"

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"min", "1", 1, false},
		{"max", "5", 5, false},
		{"padded", " 3 ", 3, false},
		{"zero", "0", 0, true},
		{"too high", "6", 0, true},
		{"negative", "-2", 0, true},
		{"empty", "", 0, true},
		{"word", "four", 0, true},
		{"float", "3.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScore(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseScore(%q) = %d, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseScore(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("parseScore(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFlashRoundTrip(t *testing.T) {
	messages := []string{
		"You are logged in, prepare to be judged.",
		"A user with that email already exists!",
		"unicode · flash — ✓",
		"",
	}
	for _, msg := range messages {
		if got := decodeFlash(encodeFlash(msg)); got != msg {
			t.Fatalf("flash round trip = %q, want %q", got, msg)
		}
	}
}

func TestDecodeFlashGarbage(t *testing.T) {
	// A tampered cookie value decodes to the empty string, never an error.
	if got := decodeFlash("not!valid!base64!"); got != "" {
		t.Fatalf("decodeFlash(garbage) = %q, want empty", got)
	}
}
