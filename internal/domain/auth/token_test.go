package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken(secret, Claims{EmployeeID: 42, Email: "ana@example.com", Role: "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.EmployeeID != 42 {
		t.Errorf("EmployeeID = %d, want 42", claims.EmployeeID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{EmployeeID: 1}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{EmployeeID: 1}, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-token"); err == nil {
		t.Error("garbage must not parse")
	}
}
