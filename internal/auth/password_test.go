package auth

import (
	"strings"
	"testing"
)

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Fatalf("unexpected hash encoding: %s", hash)
	}

	// Salts are random, so two hashes of the same password must differ.
	hash2, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == hash2 {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	valid, err := CheckPassword("changeme", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !valid {
		t.Fatal("correct password was rejected")
	}

	valid, err = CheckPassword("wrongpassword", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if valid {
		t.Fatal("wrong password was accepted")
	}
}

func TestCheckPasswordLegacyParams(t *testing.T) {
	// Hash of "changeme" created with the old m=65536,t=1,p=4 parameters.
	// Verification reads parameters from the hash itself, so logins keep
	// working while NeedsRehash schedules the upgrade.
	legacy := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	valid, err := CheckPassword("changeme", legacy)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !valid {
		t.Fatal("legacy hash rejected correct password")
	}

	valid, err = CheckPassword("wrongpassword", legacy)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if valid {
		t.Fatal("legacy hash accepted wrong password")
	}

	if !NeedsRehash(legacy) {
		t.Fatal("expected legacy parameters to need a rehash")
	}
}

func TestNeedsRehashCurrentParams(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if NeedsRehash(hash) {
		t.Fatal("fresh hash should not need a rehash")
	}
}

func TestNeedsRehashMalformed(t *testing.T) {
	for _, h := range []string{
		"",
		"not-a-hash",
		"$bcrypt$v=19$m=19456,t=2,p=1$salt$hash",
		"$argon2id$v=19$bogus$salt$hash",
	} {
		if !NeedsRehash(h) {
			t.Errorf("expected malformed hash %q to need a rehash", h)
		}
	}
}

func TestCheckPasswordMalformed(t *testing.T) {
	if _, err := CheckPassword("changeme", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if _, err := CheckPassword("changeme", "$scrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"); err == nil {
		t.Fatal("expected error for unsupported hash type")
	}
}
