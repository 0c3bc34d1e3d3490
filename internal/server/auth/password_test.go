package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("cancan1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "cancan1!" {
		t.Fatal("hash must not equal the plaintext password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}
}

func TestCheckPassword_Match(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("cancan1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword(hash, "cancan1!") {
		t.Fatal("expected password to verify against its own hash")
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("cancan1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("expected mismatched password to fail")
	}
	if CheckPassword("not-a-hash", "cancan1!") {
		t.Fatal("expected invalid hash to fail")
	}
}
