package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("tr0ub4dor&3")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected encoding: %q", encoded)
	}
	if !Verify("tr0ub4dor&3", encoded) {
		t.Fatal("correct password rejected")
	}
	if Verify("tr0ub4dor&4", encoded) {
		t.Fatal("wrong password accepted")
	}
}

func TestHashSalts(t *testing.T) {
	a, err := Hash("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := Hash("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password share a salt")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$aGFzaA",
	} {
		if Verify("anything", encoded) {
			t.Fatalf("malformed hash accepted: %q", encoded)
		}
	}
}
