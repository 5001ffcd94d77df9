package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/domain"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewJWTManager(testSecret, "household-test", 15*time.Minute)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := manager.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if got != userID {
		t.Errorf("expected userID %s, got %s", userID, got)
	}
}

func TestJWTManager_ValidateToken_Rejected(t *testing.T) {
	valid := NewJWTManager(testSecret, "household-test", 15*time.Minute)
	userID := uuid.New()

	expired, err := NewJWTManager(testSecret, "household-test", -time.Hour).GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	otherKey, err := NewJWTManager("another-secret-that-is-also-32-characters!", "household-test", time.Hour).GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate other key: %v", err)
	}
	otherIssuer, err := NewJWTManager(testSecret, "someone-else", time.Hour).GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate other issuer: %v", err)
	}
	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		Issuer:    "household-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign bad subject: %v", err)
	}

	tests := map[string]string{
		"empty":        "",
		"malformed":    "not.a.jwt",
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"bad subject":  badSubject,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			id, err := valid.ValidateToken(context.Background(), token)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
			if id != uuid.Nil {
				t.Errorf("expected nil uuid, got %s", id)
			}
		})
	}
}

func TestJWTManager_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	manager := NewJWTManager(testSecret, "household-test", time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: uuid.NewString(),
		Issuer:  "household-test",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := manager.ValidateToken(context.Background(), unsigned); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}
