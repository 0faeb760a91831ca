package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "" {
		t.Fatal("expected non-empty digest")
	}
	if digest == "secret123" {
		t.Fatal("digest must not equal the plaintext")
	}

	if err := h.Compare(digest, "secret123"); err != nil {
		t.Fatalf("Compare with correct password: %v", err)
	}
	if err := h.Compare(digest, "wrong-password"); err == nil {
		t.Fatal("expected mismatch error for wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct digests for the same plaintext")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	h := NewHasher(99)

	digest, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != DefaultCost {
		t.Fatalf("expected cost %d, got %d", DefaultCost, cost)
	}
	if !strings.HasPrefix(digest, "$2a$") {
		t.Fatalf("unexpected digest format: %s", digest)
	}
}
