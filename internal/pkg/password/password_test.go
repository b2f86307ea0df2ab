package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashWithCost("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashWithCost failed: %v", err)
	}
	if hash == "password123" {
		t.Fatal("Hash must not equal the plain password")
	}
	if !Verify("password123", hash) {
		t.Error("Expected matching password to verify")
	}
	if Verify("password124", hash) {
		t.Error("Expected wrong password to fail")
	}
	if Verify("password123", "not-a-hash") {
		t.Error("Expected malformed hash to fail")
	}
}
