// Package users implements account registration, login, and the
// token-to-identity resolution used by the authentication gate.
package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/chemhub/chemforum/internal/common"
	"github.com/chemhub/chemforum/internal/server/auth"
	"github.com/chemhub/chemforum/internal/server/models"
	"github.com/chemhub/chemforum/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is a freshly issued token together with the user it
// identifies.
type AuthResult struct {
	Token string
	User  *models.User
}

type Service struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	codec *auth.Codec
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, codec *auth.Codec) *Service {
	return &Service{db: db, rm: rm, codec: codec}
}

// Register creates a new account and signs it in. Username and email
// must be unique; duplicates surface as common.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, common.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user, err := s.rm.Users(s.db).Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, common.ErrInternal
	}

	return s.issue(user)
}

// Login authenticates by username, or by email when no username is
// given. Unknown account and wrong password are indistinguishable.
func (s *Service) Login(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if (username == "" && email == "") || password == "" {
		return nil, common.ErrMissingFields
	}

	repo := s.rm.Users(s.db)

	var user *models.User
	var err error
	if username != "" {
		user, err = repo.GetByUsername(ctx, username)
	} else {
		user, err = repo.GetByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to the user it names. Every
// failure (bad token, expired token, user gone) is the same
// common.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	identity, err := s.codec.Verify(token)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.rm.Users(s.db).GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	return user, nil
}

func (s *Service) issue(user *models.User) (*AuthResult, error) {
	token, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &AuthResult{Token: token, User: user}, nil
}
