package services

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
)

// UserService registers accounts, verifies credentials and issues session
// tokens.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenEncoder
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenEncoder, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      l.With("module", "user_service"),
	}
}

// Register creates a user with a hashed password. A taken email yields
// common.ErrAlreadyExists, including when two registrations race.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrAlreadyExists
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate checks email and password. Unknown email and wrong password
// both return common.ErrUnauthorized, and both pay for one bcrypt comparison.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*auth.Identity, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_, _ = s.hasher.Verify(password, s.dummyDigest())
			return nil, common.ErrUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrInternal
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unusable", "user_id", user.ID, "error", err)
		return nil, common.ErrUnauthorized
	}
	if !ok {
		return nil, common.ErrUnauthorized
	}

	return &auth.Identity{UserID: user.ID, Email: user.Email}, nil
}

// IssueSession returns a signed session token for id.
func (s *UserService) IssueSession(id auth.Identity) (string, error) {
	token, err := s.tokens.Encode(id.UserID, id.Email)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return token, nil
}

// Login authenticates and issues a session token in one step.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	id, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.IssueSession(*id)
}

// dummyDigest lazily hashes a random secret nobody knows, so lookups of
// unknown emails cost the same as real comparisons.
func (s *UserService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		secret := common.GenerateRandByteArray(32)
		defer common.WipeByteArray(secret)

		h, err := s.hasher.Hash(hex.EncodeToString(secret))
		if err != nil {
			s.logger.Warn(context.Background(), "dummy hash unavailable", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
