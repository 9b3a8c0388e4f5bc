package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("p1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "p1" {
		t.Fatalf("hash must not equal the plaintext password")
	}
	if !CheckPassword(hash, "p1") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "p2") {
		t.Fatalf("wrong password accepted")
	}
}

func TestSessionsIssueVerify(t *testing.T) {
	sessions := NewSessions("0123456789abcdef0123456789abcdef", time.Hour, false)

	token, err := sessions.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	email, err := sessions.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if email != "a@x.com" {
		t.Fatalf("email = %q, want a@x.com", email)
	}
}

func TestSessionsRejectsBadTokens(t *testing.T) {
	sessions := NewSessions("0123456789abcdef0123456789abcdef", time.Hour, false)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong key", mustIssue(t, NewSessions("ffffffffffffffffffffffffffffffff", time.Hour, false), "a@x.com")},
		{"expired", mustIssue(t, NewSessions("0123456789abcdef0123456789abcdef", -time.Hour, false), "a@x.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sessions.Verify(tt.token); !errors.Is(err, ErrInvalidSession) {
				t.Fatalf("Verify(%q) error = %v, want ErrInvalidSession", tt.name, err)
			}
		})
	}
}

func mustIssue(t *testing.T, sessions *Sessions, email string) string {
	t.Helper()
	token, err := sessions.Issue(email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}
