package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/placelist/placelist/internal/auth"
	"github.com/placelist/placelist/internal/metrics"
	"github.com/placelist/placelist/internal/model"
	"github.com/placelist/placelist/internal/repository"
)

const (
	maxUsernameLength = 255
	maxPasswordLength = 1024
)

// UserStore is the persistence UserService depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUserPasswordHash(ctx context.Context, id int64, hash string) error
}

// UserService handles registration and login.
type UserService struct {
	store   UserStore
	tokens  *auth.TokenManager
	metrics metrics.Recorder
	logger  *slog.Logger
	verify  func(password, encodedHash string) (bool, error)
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, tokens *auth.TokenManager, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		store:   store,
		tokens:  tokens,
		metrics: recorder,
		logger:  logger,
		verify:  auth.VerifyPassword,
	}
}

// LoginResult is a successful login.
type LoginResult struct {
	User   *model.User
	Token  string
	Claims *auth.Claims
}

func validateCredentials(username, password string) error {
	if username == "" || password == "" {
		return invalidInput("Username and password are required")
	}
	if len(username) > maxUsernameLength {
		return invalidInput(fmt.Sprintf("Username must be at most %d characters", maxUsernameLength))
	}
	if len(password) > maxPasswordLength {
		return invalidInput(fmt.Sprintf("Password must be at most %d characters", maxPasswordLength))
	}
	return nil
}

// Register creates a user with a salted password hash.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{Username: username, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.metrics.IncUserRegistered()
	return user, nil
}

// Login verifies credentials and issues a session token.
// Hashes in a legacy format are upgraded after a successful check.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, invalidInput("Username and password are required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_, _ = s.verify(password, auth.DummyHash())
			s.metrics.IncLogin("failure")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn("stored password hash unreadable",
			"user_id", user.ID,
			"error", err,
		)
	}
	if !ok {
		s.metrics.IncLogin("failure")
		return nil, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}

	token, claims, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncLogin("success")
	return &LoginResult{User: user, Token: token, Claims: claims}, nil
}

func (s *UserService) upgradeHash(ctx context.Context, user *model.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn("password rehash failed", "user_id", user.ID, "error", err)
		return
	}
	if err := s.store.UpdateUserPasswordHash(ctx, user.ID, hash); err != nil {
		s.logger.Warn("password rehash not stored", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = hash
	s.logger.Info("password_hash_upgraded", "user_id", user.ID)
}
