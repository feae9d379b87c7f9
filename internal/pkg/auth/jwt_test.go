package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/yberk/infirmary/internal/app/models"
)

func testService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "infirmary.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testService(time.Hour)
	user := &models.User{ID: 42, Username: "nurse"}

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty token pair")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Errorf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(access)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "nurse" {
		t.Errorf("claims = %+v, want userID 42 / username nurse", claims)
	}
	if claims.Issuer != "infirmary.test" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testService(-time.Minute)
	access, _, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1, Username: "nurse"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	_, err = svc.ValidateToken(access)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := testService(time.Hour)
	access, _, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1, Username: "nurse"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour})
	if _, err := other.ValidateToken(access); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Errorf("got (%q, %v)", token, err)
	}

	token, err = ExtractBearerToken("abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Errorf("raw token: got (%q, %v)", token, err)
	}

	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("empty header: err = %v, want ErrInvalidFormat", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hash, "secret123") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected mismatched password to fail")
	}
}
