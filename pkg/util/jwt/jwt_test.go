package jwt

import (
	"testing"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	Init("test-secret-test-secret-test-secret", 30, 168)

	tokenString, err := GenerateAccessToken(10)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 10 {
		t.Fatalf("expected user id 10, got %d", claims.UserID)
	}
	if claims.Subject != "access_token" {
		t.Fatalf("expected access_token subject, got %s", claims.Subject)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	// 负的有效期直接生成过期 token
	Init("test-secret-test-secret-test-secret", -1, 168)
	tokenString, err := GenerateAccessToken(10)
	if err != nil {
		t.Fatal(err)
	}

	Init("test-secret-test-secret-test-secret", 30, 168)
	if _, err := ParseToken(tokenString); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	Init("secret-a-secret-a-secret-a-secret-a", 30, 168)
	tokenString, err := GenerateAccessToken(20)
	if err != nil {
		t.Fatal(err)
	}

	Init("secret-b-secret-b-secret-b-secret-b", 30, 168)
	if _, err := ParseToken(tokenString); err == nil {
		t.Fatal("expected signature mismatch to fail validation")
	}
}

func TestRefreshTokenCarriesTokenID(t *testing.T) {
	Init("test-secret-test-secret-test-secret", 30, 168)

	tokenString, tokenID, err := GenerateRefreshToken(10)
	if err != nil {
		t.Fatal(err)
	}
	if tokenID == "" {
		t.Fatal("expected non-empty token id")
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "refresh_token" {
		t.Fatalf("expected refresh_token subject, got %s", claims.Subject)
	}
	if claims.TokenID != tokenID {
		t.Fatalf("token id mismatch: %s != %s", claims.TokenID, tokenID)
	}
}
