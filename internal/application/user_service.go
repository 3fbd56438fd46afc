package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/okasatria/go-auth-api/internal/domain/entity"
	repo "github.com/okasatria/go-auth-api/internal/domain/repository"
	"github.com/okasatria/go-auth-api/pkg/helpers"
	"github.com/okasatria/go-auth-api/pkg/mailer"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// inactive accounts alike; callers must not be able to tell them
	// apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = repo.ErrEmailTaken
	ErrUserNotFound       = repo.ErrNotFound
)

// searchLimit caps search results; queries shorter than searchMinQuery
// after trimming return an empty list instead of scanning broadly.
const (
	searchLimit    = 10
	searchMinQuery = 2
)

// Service implements registration, credential verification, token
// issuance, profile access and bounded user search. Redis and the mail
// publisher are optional collaborators; everything they do is best
// effort and never gates a response.
type Service struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Mail   *helpers.RabbitPublisher
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, mail *helpers.RabbitPublisher) *Service {
	return &Service{Repo: r, JWT: jwt, Redis: rdb, Logger: logger, Mail: mail}
}

// Register creates the user with a normalized email and bcrypt-hashed
// password. The store's unique constraint is the authoritative duplicate
// signal: a concurrent registration of the same email surfaces here as
// ErrEmailTaken, never as a partial write.
func (s *Service) Register(ctx context.Context, email, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Email:        entity.NormalizeEmail(email),
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.publishWelcomeEmail(ctx, u)
	return u, nil
}

// EmailTaken reports whether the normalized email is already registered
// to someone other than excludeID (empty excludeID checks all users).
// Advisory only; Register and UpdateEmail still rely on the constraint.
func (s *Service) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	return s.Repo.EmailTaken(ctx, entity.NormalizeEmail(email), excludeID)
}

// Login verifies the credentials and issues an access/refresh pair.
// The bcrypt comparison runs against a dummy hash when the email is
// unknown so both failure paths take the same time and return the same
// error.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, helpers.TokenPair, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))

	hash := helpers.DummyPasswordHash
	if err == nil {
		hash = u.PasswordHash
	}
	match := helpers.CheckPassword(hash, password)

	if err != nil || !match || !u.IsActive {
		return nil, helpers.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.JWT.GeneratePair(u.ID, u.Email)
	if err != nil {
		return nil, helpers.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	s.recordSession(ctx, u, map[string]any{
		"user_id":    u.ID,
		"email":      u.Email,
		"last_login": time.Now().UTC().Format(time.RFC3339Nano),
	})
	return u, pair, nil
}

// Refresh rotates a valid refresh token into a new access/refresh pair.
// Old refresh tokens are not tracked or revoked; rotation without a
// blacklist is the accepted trust trade-off.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (helpers.TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return helpers.TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || !u.IsActive {
		return helpers.TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.JWT.GeneratePair(u.ID, u.Email)
	if err != nil {
		return helpers.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	s.recordSession(ctx, u, map[string]any{
		"rotated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	return pair, nil
}

// GetProfile returns the user for an authenticated identity.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateEmail changes the identity's email. Updating to the current
// email is a no-op success; an email owned by another user fails with
// ErrEmailTaken and no mutation, whether caught by the pre-check or by
// the constraint under a concurrent write.
func (s *Service) UpdateEmail(ctx context.Context, userID, newEmail string) (*entity.User, error) {
	normalized := entity.NormalizeEmail(newEmail)

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if u.Email == normalized {
		return u, nil
	}

	taken, err := s.Repo.EmailTaken(ctx, normalized, userID)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	updated, err := s.Repo.UpdateEmail(ctx, userID, normalized)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SearchUsers returns up to searchLimit users whose email contains q as
// a case-insensitive substring. Queries shorter than two characters
// after trimming yield an empty list: success, not an error.
func (s *Service) SearchUsers(ctx context.Context, q string) ([]entity.PublicUser, error) {
	q = strings.TrimSpace(q)
	if len(q) < searchMinQuery {
		return []entity.PublicUser{}, nil
	}
	users, err := s.Repo.SearchByEmail(ctx, q, searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]entity.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// recordSession writes informational session bookkeeping to redis. It is
// never read back to accept or reject a request.
func (s *Service) recordSession(ctx context.Context, u *entity.User, fields map[string]any) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RecordSession(ctx, s.Redis, u.ID, fields, 24*time.Hour); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session bookkeeping failed")
	}
}

// publishWelcomeEmail queues a welcome mail for the email worker.
// Best effort: a broker failure is logged and never fails registration.
func (s *Service) publishWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Email": u.Email},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email publish failed")
	}
}
