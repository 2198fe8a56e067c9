package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	tokenString, err := GenerateJWT(42, "coach", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ValidateJWT(tokenString, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if claims.ProfileID != 42 {
		t.Errorf("ProfileID = %d, want 42", claims.ProfileID)
	}
	if claims.Role != "coach" {
		t.Errorf("Role = %q, want %q", claims.Role, "coach")
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT(42, "player", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(tokenString, "some-other-secret"); err == nil {
		t.Error("ValidateJWT() should reject a token signed with a different secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	tokenString, err := GenerateJWT(42, "player", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(tokenString, testSecret); err == nil {
		t.Error("ValidateJWT() should reject an expired token")
	}
}

func TestValidateJWTEmptyInputs(t *testing.T) {
	if _, err := ValidateJWT("", testSecret); err == nil {
		t.Error("ValidateJWT() should reject an empty token")
	}
	if _, err := ValidateJWT("not-a-token", ""); err == nil {
		t.Error("ValidateJWT() should reject an empty secret")
	}
	if _, err := ValidateJWT("garbage.token.value", testSecret); err == nil {
		t.Error("ValidateJWT() should reject a malformed token")
	}
}

func TestValidateJWTForeignIssuer(t *testing.T) {
	claims := &Claims{
		ProfileID: 42,
		Role:      "player",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "someone-else",
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := ValidateJWT(tokenString, testSecret); err == nil {
		t.Error("ValidateJWT() should reject a token from a different issuer")
	}
}

func TestValidateJWTMissingProfileID(t *testing.T) {
	tokenString, err := GenerateJWT(0, "player", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(tokenString, testSecret); err == nil {
		t.Error("ValidateJWT() should reject a token with a zero profile_id claim")
	}
}
