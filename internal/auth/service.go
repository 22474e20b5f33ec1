package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidEmail = errors.New("a valid email is required")
	ErrInvalidToken = errors.New("invalid or expired token")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	UpsertUser(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)

	CreateVerificationToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	// ConsumeVerificationToken deletes the token row and returns its
	// user. Unknown or expired hashes return ErrInvalidToken.
	ConsumeVerificationToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
}

type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewService(repo Repository, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// RequestLink starts the magic-link flow: the user is upserted by
// email and a single-use token is stored hashed with a 15 minute
// expiry. The raw token is returned for the mail sender.
func (s *Service) RequestLink(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}

	user, err := s.repo.UpsertUser(ctx, email)
	if err != nil {
		return "", fmt.Errorf("upserting user: %w", err)
	}

	token, err := newLinkToken()
	if err != nil {
		return "", err
	}

	expiresAt := s.now().Add(linkTTL)
	if err := s.repo.CreateVerificationToken(ctx, user.ID, hashToken(token), expiresAt); err != nil {
		return "", fmt.Errorf("storing verification token: %w", err)
	}

	return token, nil
}

// Verify consumes a magic-link token and issues a session JWT.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	userID, err := s.repo.ConsumeVerificationToken(ctx, hashToken(token))
	if err != nil {
		return "", err
	}

	return s.issueJWT(userID)
}

// Me returns the profile for an authenticated user id.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) issueJWT(userID uuid.UUID) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// ParseSession validates a session JWT and returns the user id.
func (s *Service) ParseSession(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
