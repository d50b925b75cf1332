package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
	if strings.Contains(hash, "Secret123") {
		t.Fatalf("hash leaks plaintext")
	}

	if !Verify("Secret123", hash) {
		t.Fatalf("correct password did not verify")
	}
	if Verify("wrongpass", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	a, err := Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical; salt is not random")
	}
	if !Verify("same-password", a) || !Verify("same-password", b) {
		t.Fatalf("both hashes should verify")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	for _, h := range []string{"", "plaintext", "$argon2id$v=19$bogus", "$bcrypt$whatever"} {
		if Verify("anything", h) {
			t.Fatalf("malformed hash %q verified", h)
		}
	}
}
