package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
)

func TestValidateSignup(t *testing.T) {
	valid := SignupInput{
		ParentName:    "Ravi",
		ParentEmail:   "ravi@example.com",
		Password:      "secret",
		ChildName:     "Anya",
		ChildAge:      7,
		ChildStandard: 2,
	}
	if err := validateSignup(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*SignupInput)
	}{
		{"missing parent name", func(i *SignupInput) { i.ParentName = " " }},
		{"missing email", func(i *SignupInput) { i.ParentEmail = "" }},
		{"missing password", func(i *SignupInput) { i.Password = "" }},
		{"missing child name", func(i *SignupInput) { i.ChildName = "" }},
		{"age below range", func(i *SignupInput) { i.ChildAge = 4 }},
		{"age above range", func(i *SignupInput) { i.ChildAge = 16 }},
		{"standard below range", func(i *SignupInput) { i.ChildStandard = 0 }},
		{"standard above range", func(i *SignupInput) { i.ChildStandard = 9 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			if err := validateSignup(input); !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestParseAccessToken(t *testing.T) {
	svc := &authService{jwtSecretKey: "test-secret", accessTTL: time.Hour}

	userID := uuid.New()
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	got, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if got != userID {
		t.Fatalf("subject mismatch: got %s want %s", got, userID)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	svc := &authService{jwtSecretKey: "test-secret"}
	now := time.Now()

	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}).SignedString([]byte("test-secret"))

	wrongKey, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("other-secret"))

	badSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))

	cases := map[string]string{
		"expired":     expired,
		"wrong key":   wrongKey,
		"bad subject": badSubject,
		"garbage":     "not.a.jwt",
		"empty":       "",
	}
	for name, token := range cases {
		if _, err := svc.ParseAccessToken(token); !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeUserTokenRepo()
	svc := NewAuthService(nil, testLogger(t), userRepo, tokenRepo, "test-secret", time.Hour, 24*time.Hour)

	userID := uuid.New()
	userRepo.add(userID)
	tokenRepo.tokens["old-refresh"] = &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	user, pair, err := svc.Refresh(context.Background(), "old-refresh")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if user.ID != userID {
		t.Fatalf("wrong user: got %s want %s", user.ID, userID)
	}
	if pair.RefreshToken == "" || pair.RefreshToken == "old-refresh" {
		t.Fatalf("refresh token not rotated: %q", pair.RefreshToken)
	}
	if _, ok := tokenRepo.tokens["old-refresh"]; ok {
		t.Fatalf("consumed token still stored")
	}
	if _, ok := tokenRepo.tokens[pair.RefreshToken]; !ok {
		t.Fatalf("rotated token not persisted")
	}
	if got, err := svc.ParseAccessToken(pair.AccessToken); err != nil || got != userID {
		t.Fatalf("rotated access token invalid: got=%s err=%v", got, err)
	}
}

func TestRefreshRejects(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeUserTokenRepo()
	svc := NewAuthService(nil, testLogger(t), userRepo, tokenRepo, "test-secret", time.Hour, 24*time.Hour)

	userID := uuid.New()
	userRepo.add(userID)
	tokenRepo.tokens["stale"] = &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: "stale",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}

	if _, _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("empty token: expected ErrInvalidArgument, got %v", err)
	}
	if _, _, err := svc.Refresh(context.Background(), "unknown"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("unknown token: expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := svc.Refresh(context.Background(), "stale"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expired token: expected ErrUnauthorized, got %v", err)
	}
	if _, ok := tokenRepo.tokens["stale"]; ok {
		t.Fatalf("expired token should have been purged")
	}
}
