package crypto

import (
	"bytes"
	"strings"
	"testing"
)

const testKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !svc.Configured() {
		t.Fatal("service should be configured")
	}

	plain := "Banco 001, ag 1234, cc 56789-0"
	encrypted, err := svc.EncryptString(plain)
	if err != nil {
		t.Fatalf("EncryptString: %v", err)
	}
	if bytes.Contains(encrypted, []byte("Banco")) {
		t.Error("ciphertext must not contain the plaintext")
	}

	decrypted, err := svc.DecryptString(encrypted)
	if err != nil {
		t.Fatalf("DecryptString: %v", err)
	}
	if decrypted != plain {
		t.Errorf("round trip = %q, want %q", decrypted, plain)
	}
}

func TestEncryptNonceVaries(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a, _ := svc.EncryptString("mesmo valor")
	b, _ := svc.EncryptString("mesmo valor")
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same value must differ")
	}
}

func TestUnconfiguredPassThrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if svc.Configured() {
		t.Fatal("empty key must leave the service unconfigured")
	}
	out, err := svc.EncryptString("algo")
	if err != nil || out != nil {
		t.Errorf("unconfigured encrypt = %v, %v", out, err)
	}
}

func TestBadKeyRejected(t *testing.T) {
	if _, err := New("curta"); err == nil || !strings.Contains(err.Error(), "32 bytes") {
		t.Errorf("short key should be rejected, got %v", err)
	}
}

func TestTamperedCiphertextFails(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	encrypted, err := svc.EncryptString("dados sigilosos")
	if err != nil {
		t.Fatalf("EncryptString: %v", err)
	}
	encrypted[len(encrypted)-1] ^= 0xff
	if _, err := svc.DecryptString(encrypted); err == nil {
		t.Error("tampered ciphertext must not decrypt")
	}
}
