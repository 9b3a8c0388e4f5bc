package httpserver

import "testing"

func FuzzParseScore(f *testing.F) {
	seeds := []string{"1", "5", "0", "-3", " 4 ", "3.5", "five", ""}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		score, err := parseScore(raw)
		if err == nil && (score < 1 || score > 5) {
			t.Fatalf("parseScore(%q) = %d outside 1..5 without error", raw, score)
		}
	})
}

func FuzzFlashRoundTrip(f *testing.F) {
	seeds := []string{"", "plain", "with spaces", "semi;colon", "日本語"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, message string) {
		if got := decodeFlash(encodeFlash(message)); got != message {
			t.Fatalf("round trip = %q, want %q", got, message)
		}
	})
}
