package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/satriadi/go-task-api/internal/domain/entity"
	"github.com/satriadi/go-task-api/internal/domain/repository"
	"github.com/satriadi/go-task-api/pkg/apperr"
	"github.com/satriadi/go-task-api/pkg/helpers"
	"github.com/satriadi/go-task-api/pkg/mailer"
)

// identityCacheTTL bounds how stale a cached identity lookup may be.
const identityCacheTTL = 5 * time.Minute

func identityKey(email string) string {
	return "user:email:" + email
}

// AuthService owns credential hashing, token issuance, and the resolution of
// a bearer token into a durable user record. Redis and the publisher are
// optional; a nil client skips caching / email publishing.
type AuthService struct {
	Repo     repository.UserRepository
	Tokens   *helpers.TokenManager
	TokenTTL time.Duration
	Redis    *redis.Client
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, tokens *helpers.TokenManager, tokenTTL time.Duration, rdb *redis.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Repo:     repo,
		Tokens:   tokens,
		TokenTTL: tokenTTL,
		Redis:    rdb,
		Pub:      pub,
		Logger:   logger,
	}
}

// Register creates a user with a bcrypt-hashed credential. A duplicate email
// surfaces as a Conflict and leaves the original record untouched.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	u := &entity.User{Email: email, Password: hash, Name: name}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.New(apperr.Conflict, "email already registered")
		}
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	s.publishWelcome(ctx, u)
	return u, nil
}

// Login verifies email/password and mints a bearer token with the
// operational TTL. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, apperr.New(apperr.Authentication, "invalid email or password")
		}
		return "", time.Time{}, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, apperr.New(apperr.Authentication, "invalid email or password")
	}

	token, exp, err := s.Tokens.Issue(u.Email, s.TokenTTL)
	if err != nil {
		return "", time.Time{}, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return token, exp, nil
}

// Resolve looks up the durable record behind a validated token subject.
// An unknown subject reports the same generic authentication failure as a
// bad token so registered emails cannot be probed.
func (s *AuthService) Resolve(ctx context.Context, subject string) (*entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, identityKey(subject), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.Authentication, "could not validate credentials")
		}
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, identityKey(u.Email), u, identityCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("identity cache write failed")
		}
	}
	return u, nil
}

// Authenticate turns a raw bearer token into a full identity. Every token or
// identity failure collapses into one Authentication error; only unexpected
// store faults keep their Internal classification.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	subject, err := s.Tokens.Validate(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.Authentication, "could not validate credentials", err)
	}
	return s.Resolve(ctx, subject)
}

func (s *AuthService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Name:    u.Name,
		Subject: "Welcome aboard",
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email publish failed")
	}
}
