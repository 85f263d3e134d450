package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("userID = %q, want user-123", userID)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue("u1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	token, err := NewManager("secret", -time.Minute).Issue("u1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewManager("secret", -time.Minute).Verify(token); err == nil {
		t.Error("expected verification of an expired token to fail")
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := NewManager("secret", time.Hour).Verify("not.a.token"); err == nil {
		t.Error("expected verification of garbage to fail")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter22" {
		t.Error("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}
