package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MurtazaJ53/allure-web-grace/pkg/config"
	"github.com/MurtazaJ53/allure-web-grace/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// AuthResult pairs a user with a freshly issued token.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo    Repository
	authCfg config.AuthConfig
	logger  *zap.Logger
}

func NewService(repo Repository, authCfg config.AuthConfig, logger *zap.Logger) Service {
	return &service{
		repo:    repo,
		authCfg: authCfg,
		logger:  logger,
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)
	if len(input.Password) < 8 {
		return nil, ErrWeakPassword
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        email,
		Username:     username,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username))

	return s.issueToken(u)
}

func (s *service) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.ComparePassword(u.PasswordHash, creds.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(u)
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) issueToken(u *User) (*AuthResult, error) {
	token, err := auth.GenerateToken(u.ID, u.Username, s.authCfg.JWTSecret, s.authCfg.JWTIssuer, s.authCfg.JWTExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}
