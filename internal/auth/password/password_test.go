package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("s3cret-passphrase")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret-passphrase" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := Compare(hash, "s3cret-passphrase"); err != nil {
		t.Fatalf("compare rejected the correct password: %v", err)
	}
	if err := Compare(hash, "wrong"); err == nil {
		t.Fatal("compare accepted a wrong password")
	}
}
