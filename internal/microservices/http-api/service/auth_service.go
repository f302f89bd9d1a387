package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"titlehub/internal/config"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/notify"
	"titlehub/internal/microservices/http-api/repository"
	"titlehub/internal/middleware/auth"
	"titlehub/internal/shared/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess = "access"
	tokenIssuer     = "titlehub"
	// confirmation codes are hex encoded, so this yields 12 characters
	confirmationCodeBytes = 6
)

// Claims are the JWT claims of an access token.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"type"`
	// RefreshID names the refresh token the access token was derived from.
	// The access token stops validating once that refresh token is revoked or gone.
	RefreshID string `json:"rid"`
	jwt.RegisteredClaims
}

// TokenPair is what a successful confirmation or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

type AuthService interface {
	// Signup registers email and sends it a confirmation code.
	Signup(ctx context.Context, email string) (*models.User, error)
	// ObtainToken exchanges an email and confirmation code for a token pair. Repeatable.
	ObtainToken(ctx context.Context, email, code string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
	// ValidateToken parses an access token and checks its refresh token is still live.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	notifier         notify.Notifier
	logger           *slog.Logger

	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	mailFrom        string
	skipCodeCheck   bool

	now func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	notifier notify.Notifier,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		notifier:         notifier,
		logger:           logger,
		jwtSecret:        []byte(cfg.JWTSecret),
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		mailFrom:         cfg.MailFrom,
		skipCodeCheck:    cfg.LegacySkipCodeCheck,
		now:              time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Validation("email", "this field is required")
	}

	// the password is never shown to anyone; these accounts log in with codes
	password, err := auth.RandomPassword()
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code, err := auth.GenerateCode(confirmationCodeBytes)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}

	user := models.NewUser(email, email)
	user.Password = hashedPassword
	user.ConfirmationCode = code

	if err := s.userRepo.Register(ctx, user); err != nil {
		return nil, err
	}

	msg := notify.Message{
		Subject: "Confirmation code",
		Body:    fmt.Sprintf("Your confirmation code: %s", code),
		From:    s.mailFrom,
		To:      []string{email},
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "confirmation code delivery failed", "user_id", user.ID, "error", err)
		return nil, apperr.Delivery(err)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return user, nil
}

func (s *authService) ObtainToken(ctx context.Context, email, code string) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	if s.skipCodeCheck {
		s.logger.WarnContext(ctx, "issuing tokens without confirmation code check", "user_id", user.ID)
	} else if user.ConfirmationCode == "" ||
		subtle.ConstantTimeCompare([]byte(user.ConfirmationCode), []byte(code)) != 1 {
		return nil, apperr.Validation("confirmation_code", "invalid confirmation code")
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.generateAccessToken(user, refreshToken.ID)
	if err != nil {
		return nil, err
	}

	if user.ConfirmedAt == nil {
		confirmedAt := s.now()
		if err := s.userRepo.MarkConfirmed(ctx, user.ID, confirmedAt); err != nil {
			return nil, err
		}
		user.ConfirmedAt = &confirmedAt
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		ExpiresIn:    s.accessTokenTTL,
	}, nil
}

func (s *authService) generateAccessToken(user *models.User, refreshID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		TokenType: tokenTypeAccess,
		RefreshID: refreshID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (*models.RefreshToken, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(), // opaque; only its row gives it meaning
		ExpiresAt: s.now().Add(s.refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, err
	}
	return refreshToken, nil
}

// Refresh derives a new access token; the refresh token itself is returned unchanged.
func (s *authService) Refresh(ctx context.Context, refreshTokenString string) (*TokenPair, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("invalid refresh token")
		}
		return nil, err
	}
	if refreshToken.Revoked {
		return nil, apperr.Unauthenticated("refresh token revoked")
	}
	if s.now().After(refreshToken.ExpiresAt) {
		if err := s.refreshTokenRepo.Delete(ctx, refreshToken.ID); err != nil {
			s.logger.WarnContext(ctx, "failed to delete expired refresh token", "error", err)
		}
		return nil, apperr.Unauthenticated("refresh token expired")
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.generateAccessToken(user, refreshToken.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		ExpiresIn:    s.accessTokenTTL,
	}, nil
}

func (s *authService) Revoke(ctx context.Context, refreshTokenString string) error {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		return err
	}
	return s.refreshTokenRepo.Revoke(ctx, refreshToken.ID)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthenticated("token has expired")
		}
		return nil, apperr.Unauthenticated("invalid token")
	}
	if !token.Valid || claims.TokenType != tokenTypeAccess || claims.RefreshID == "" {
		return nil, apperr.Unauthenticated("invalid token")
	}

	refreshToken, err := s.refreshTokenRepo.FindByID(ctx, claims.RefreshID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthenticated("session has ended")
		}
		return nil, err
	}
	if refreshToken.Revoked || refreshToken.UserID != claims.UserID || s.now().After(refreshToken.ExpiresAt) {
		return nil, apperr.Unauthenticated("session has ended")
	}
	return claims, nil
}
