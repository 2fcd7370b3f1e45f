package service

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hrsuite/hr-backend/internal/core/domain"
)

func TestTokenService_IssueAccessToken_Claims(t *testing.T) {
	svc := NewTokenService(TokenConfig{
		Secret:    "samplekeysamplekeysamplekeysamplekey",
		Issuer:    "hr-backend",
		Audience:  "hr-clients",
		AccessTTL: 2 * time.Hour,
	})
	user := &domain.User{ID: 1, Email: "admin@hrs.com", Role: domain.RoleAdmin}

	signed, err := svc.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("samplekeysamplekeysamplekeysamplekey"), nil
	}, jwt.WithIssuer("hr-backend"), jwt.WithAudience("hr-clients"))
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}

	if claims["sub"] != "1" {
		t.Fatalf("expected sub \"1\", got %v", claims["sub"])
	}
	if claims["email"] != "admin@hrs.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if claims["role"] != string(domain.RoleAdmin) {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	if remaining := time.Until(exp.Time); remaining < time.Hour || remaining > 2*time.Hour {
		t.Fatalf("unexpected token lifetime: %v", remaining)
	}
}

func TestTokenService_IssueAccessToken_WrongKeyRejected(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "right-key", Issuer: "hr", Audience: "hr"})
	signed, err := svc.IssueAccessToken(&domain.User{ID: 2, Email: "e@hrs.com", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong-key"), nil
	})
	if err == nil {
		t.Fatalf("expected signature verification to fail")
	}
}

func TestTokenService_IssueRefreshToken_Entropy(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret"})

	tok, err := svc.IssueRefreshToken()
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		t.Fatalf("refresh token is not base64: %v", err)
	}
	if len(raw) < 32 {
		t.Fatalf("expected at least 32 bytes of entropy, got %d", len(raw))
	}

	other, err := svc.IssueRefreshToken()
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}
	if other == tok {
		t.Fatalf("two refresh tokens should never collide")
	}
}
