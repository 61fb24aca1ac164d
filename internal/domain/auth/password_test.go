package auth

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3nha-forte")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3nha-forte" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := CheckPassword(hash, "s3nha-forte"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "errada"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestPasswordHashesDiffer(t *testing.T) {
	a, err := HashPassword("mesma-senha")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("mesma-senha")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should use distinct salts")
	}
}
