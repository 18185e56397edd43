package util

import (
	"testing"
	"time"

	"certquiz_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret-at-least-32-chars!!"

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "carol@example.com",
		Role:      model.RoleAdmin,
	}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected userID 42, got %d", claims.UserID)
	}
	if claims.Email != "carol@example.com" {
		t.Errorf("email mismatch: %s", claims.Email)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("role mismatch: %s", claims.Role)
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Email: "dave@example.com"}

	token, err := GenerateJWT(user, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("expected an error for an expired token")
	}
}

func TestJWTForeignIssuerRejected(t *testing.T) {
	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT(signed, testSecret); err == nil {
		t.Error("expected an error for a token from a foreign issuer")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Email: "dave@example.com"}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "another-secret-that-is-long-enough!!"); err == nil {
		t.Error("expected an error for a token signed with a different secret")
	}
}
