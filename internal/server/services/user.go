// Package services contains server-side business logic. This file implements
// UserService, which registers accounts and exchanges credentials for access
// tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/thingful/internal/common"
	"github.com/dmitrijs2005/thingful/internal/cryptox"
	"github.com/dmitrijs2005/thingful/internal/logging"
	"github.com/dmitrijs2005/thingful/internal/server/metrics"
	"github.com/dmitrijs2005/thingful/internal/server/models"
	"github.com/dmitrijs2005/thingful/internal/server/policy"
	"github.com/dmitrijs2005/thingful/internal/server/repositories/repomanager"
	"github.com/samber/oops"
)

const (
	CodePasswordHashFailed = "PASSWORD_HASH_FAILED"
	CodeTokenSignFailed    = "TOKEN_SIGN_FAILED"
)

// TokenIssuer mints access tokens. *auth.Issuer satisfies it.
type TokenIssuer interface {
	Issue(userID, subject string) (string, error)
}

// RegisterRequest carries a new account. Nickname is optional.
type RegisterRequest struct {
	UserName string
	Password string
	FullName string
	Nickname *string
}

type LoginRequest struct {
	UserName string
	Password string
}

// UserService provides account operations:
// - Register: validate and create users
// - Login: verify credentials and mint an access token
// - GetUser: look up the sanitized view of a user
//
// It holds no mutable state and is safe for concurrent use.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.Hasher
	issuer      TokenIssuer
	logger      logging.Logger
}

// NewUserService constructs a UserService. db may be nil for stores that do
// not use one.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.Hasher, issuer TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		logger:      logger,
	}
}

// Register validates req and stores a new user. Checks run in a fixed order
// and the first failure is returned: required fields (user_name, password,
// full_name), password policy, then user name availability.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.UserView, error) {
	view, err := s.register(ctx, req)
	metrics.RecordRegistration(err)
	return view, err
}

func (s *UserService) register(ctx context.Context, req RegisterRequest) (*models.UserView, error) {
	switch {
	case req.UserName == "":
		return nil, common.MissingBodyField("user_name")
	case req.Password == "":
		return nil, common.MissingBodyField("password")
	case req.FullName == "":
		return nil, common.MissingBodyField("full_name")
	}

	if err := policy.Validate(req.Password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByLogin(ctx, req.UserName)
	switch {
	case err == nil:
		return nil, common.ErrUsernameTaken
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "user_name", req.UserName, "error", err)
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, oops.Code(CodePasswordHashFailed).With("user_name", req.UserName).
			Wrap(fmt.Errorf("%w: %w", common.ErrorInternal, err))
	}

	user := &models.User{
		UserName:     req.UserName,
		FullName:     req.FullName,
		PasswordHash: hash,
	}
	if req.Nickname != nil && *req.Nickname != "" {
		nickname := *req.Nickname
		user.Nickname = &nickname
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, err
		}
		s.logger.Error(ctx, "user insert failed", "user_name", req.UserName, "error", err)
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "user_name", user.UserName)

	return user.View(), nil
}

// Login exchanges a user name and password for an access token. An unknown
// user and a wrong password produce the same common.ErrInvalidCredentials,
// and both run one bcrypt comparison.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (string, error) {
	token, err := s.login(ctx, req)
	metrics.RecordLogin(err)
	return token, err
}

func (s *UserService) login(ctx context.Context, req LoginRequest) (string, error) {
	switch {
	case req.UserName == "":
		return "", common.MissingRequestField("user_name")
	case req.Password == "":
		return "", common.MissingRequestField("password")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(req.Password, s.hasher.DummyHash())
			return "", common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "user_name", req.UserName, "error", err)
		return "", fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.UserName)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "user_id", user.ID, "error", err)
		return "", oops.Code(CodeTokenSignFailed).With("user_id", user.ID).
			Wrap(fmt.Errorf("%w: %w", common.ErrorInternal, err))
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)

	return token, nil
}

// GetUser returns the view of the user with the given id, or
// common.ErrorNotFound.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.UserView, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user.View(), nil
}
