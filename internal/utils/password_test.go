package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// TestPasswordRoundtrip hashes with the minimum cost to keep the test fast.
func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals the plain password")
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

// TestHashPasswordSalted verifies two hashes of the same input differ.
func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical; salting is broken")
	}
}
