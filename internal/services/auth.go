package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/storynest-backend/internal/data/repos"
	types "github.com/yungbote/storynest-backend/internal/domain"
	"github.com/yungbote/storynest-backend/internal/pkg/apperr"
	"github.com/yungbote/storynest-backend/internal/pkg/logger"
)

const (
	minChildAge      = 5
	maxChildAge      = 15
	minChildStandard = 1
	maxChildStandard = 8
)

type SignupInput struct {
	ParentName    string `json:"parentName"`
	ParentEmail   string `json:"parentEmail"`
	Password      string `json:"password"`
	ChildName     string `json:"childName"`
	ChildAge      int    `json:"childAge"`
	ChildStandard int    `json:"childStandard"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService interface {
	Register(ctx context.Context, input SignupInput) (*types.User, *TokenPair, error)
	Login(ctx context.Context, parentEmail, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*types.User, *TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ParseAccessToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func validateSignup(input SignupInput) error {
	if strings.TrimSpace(input.ParentName) == "" ||
		strings.TrimSpace(input.ParentEmail) == "" ||
		strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.ChildName) == "" {
		return fmt.Errorf("%w: all fields are required", apperr.ErrInvalidArgument)
	}
	if input.ChildAge < minChildAge || input.ChildAge > maxChildAge {
		return fmt.Errorf("%w: childAge must be between %d and %d",
			apperr.ErrInvalidArgument, minChildAge, maxChildAge)
	}
	if input.ChildStandard < minChildStandard || input.ChildStandard > maxChildStandard {
		return fmt.Errorf("%w: childStandard must be between %d and %d",
			apperr.ErrInvalidArgument, minChildStandard, maxChildStandard)
	}
	return nil
}

func (as *authService) Register(ctx context.Context, input SignupInput) (*types.User, *TokenPair, error) {
	input.ParentEmail = strings.ToLower(strings.TrimSpace(input.ParentEmail))
	if err := validateSignup(input); err != nil {
		return nil, nil, err
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, input.ParentEmail)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, nil, fmt.Errorf("%w: email already registered", apperr.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		ID:            uuid.New(),
		ParentName:    strings.TrimSpace(input.ParentName),
		ParentEmail:   input.ParentEmail,
		Password:      string(hash),
		ChildName:     strings.TrimSpace(input.ChildName),
		ChildAge:      input.ChildAge,
		ChildStandard: input.ChildStandard,
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		var issueErr error
		pair, issueErr = as.issueTokens(ctx, tx, user)
		return issueErr
	}); err != nil {
		return nil, nil, err
	}

	as.log.Info("user registered", "userID", user.ID, "parentEmail", user.ParentEmail)
	return user, pair, nil
}

func (as *authService) Login(ctx context.Context, parentEmail, password string) (*types.User, *TokenPair, error) {
	parentEmail = strings.ToLower(strings.TrimSpace(parentEmail))
	if parentEmail == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", apperr.ErrInvalidArgument)
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, parentEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid email or password", apperr.ErrInvalidArgument)
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid email or password", apperr.ErrInvalidArgument)
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issueErr error
		pair, issueErr = as.issueTokens(ctx, tx, user)
		return issueErr
	}); err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented token is consumed and
// a fresh pair is issued. Expired rows are purged opportunistically.
func (as *authService) Refresh(ctx context.Context, refreshToken string) (*types.User, *TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, nil, fmt.Errorf("%w: refreshToken is required", apperr.ErrInvalidArgument)
	}

	stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	now := time.Now()
	if now.After(stored.ExpiresAt) {
		if err := as.userTokenRepo.DeleteExpired(ctx, nil, now); err != nil {
			as.log.Warn("failed to purge expired tokens", "error", err)
		}
		return nil, nil, apperr.ErrUnauthorized
	}

	user, err := as.userRepo.GetByID(ctx, nil, stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Consume first: a rotation that fails midway forces a re-login
	// instead of leaving the old token live.
	if err := as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken); err != nil {
		return nil, nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	pair, err := as.issueTokens(ctx, nil, user)
	if err != nil {
		return nil, nil, err
	}

	as.log.Info("refresh token rotated", "userID", user.ID)
	return user, pair, nil
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperr.ErrUnauthorized
	}
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken := uuid.NewString()
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{
		{
			ID:           uuid.New(),
			UserID:       user.ID,
			RefreshToken: refreshToken,
			ExpiresAt:    now.Add(as.refreshTTL),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperr.ErrUnauthorized
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, apperr.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.ErrUnauthorized
	}
	return userID, nil
}
